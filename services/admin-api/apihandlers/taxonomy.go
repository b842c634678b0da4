package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/circlekay00/theft-app/pkg/apihelpers"
	mw "github.com/circlekay00/theft-app/pkg/apihelpers/middlewares"
	jwthandling "github.com/circlekay00/theft-app/pkg/jwt-handling"
	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
)

func (h *HttpEndpoints) AddTaxonomyManagementAPI(rg *gin.RouterGroup) {
	taxonomyGroup := rg.Group("/taxonomy")
	taxonomyGroup.Use(mw.GetAndValidateUserJWT(h.tokenSignKey))
	taxonomyGroup.Use(mw.RequireAdminUser())
	{
		taxonomyGroup.GET("/categories", h.getCategories)
		taxonomyGroup.POST("/categories", mw.RequirePayload(), h.createCategory)
		taxonomyGroup.PUT("/categories/:categoryID", mw.RequirePayload(), h.renameCategory)
		taxonomyGroup.DELETE("/categories/:categoryID", h.deleteCategory)
		taxonomyGroup.POST("/categories/:categoryID/subcategories", mw.RequirePayload(), h.addSubcategory)
		taxonomyGroup.DELETE("/categories/:categoryID/subcategories/:name", h.removeSubcategory)

		taxonomyGroup.GET("/offenders", h.getOffenders)
		taxonomyGroup.POST("/offenders", mw.RequirePayload(), h.createOffender)
		taxonomyGroup.PUT("/offenders/:offenderID", mw.RequirePayload(), h.renameOffender)
		taxonomyGroup.DELETE("/offenders/:offenderID", h.deleteOffender)

		taxonomyGroup.GET("/fields", h.getFields)
		taxonomyGroup.POST("/fields", mw.RequirePayload(), h.createField)
		taxonomyGroup.PUT("/fields/:fieldID", mw.RequirePayload(), h.updateField)
		taxonomyGroup.DELETE("/fields/:fieldID", h.deleteField)
	}
}

type namePayload struct {
	Name string `json:"name"`
}

type newCategoryPayload struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

func (h *HttpEndpoints) getCategories(c *gin.Context) {
	categories, err := h.incidentService.ListCategories()
	if err != nil {
		apihelpers.ErrorResponse(c, "getCategories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *HttpEndpoints) createCategory(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	var req newCategoryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("createCategory: error binding payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	category, err := h.incidentService.CreateCategory(token.ToActorContext(), req.Name, req.Subcategories)
	if err != nil {
		apihelpers.ErrorResponse(c, "createCategory", err)
		return
	}

	slog.Info("createCategory: category created", slog.String("userID", token.Subject), slog.String("categoryID", category.ID.Hex()))
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

func (h *HttpEndpoints) renameCategory(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	categoryID := c.Param("categoryID")

	var req namePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("renameCategory: error binding payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.incidentService.RenameCategory(token.ToActorContext(), categoryID, req.Name); err != nil {
		apihelpers.ErrorResponse(c, "renameCategory", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category renamed"})
}

func (h *HttpEndpoints) deleteCategory(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	categoryID := c.Param("categoryID")

	if err := h.incidentService.DeleteCategory(token.ToActorContext(), categoryID); err != nil {
		apihelpers.ErrorResponse(c, "deleteCategory", err)
		return
	}

	slog.Info("deleteCategory: category deleted", slog.String("userID", token.Subject), slog.String("categoryID", categoryID))
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

func (h *HttpEndpoints) addSubcategory(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	categoryID := c.Param("categoryID")

	var req namePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("addSubcategory: error binding payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	added, err := h.incidentService.AddSubcategory(token.ToActorContext(), categoryID, req.Name)
	if err != nil {
		apihelpers.ErrorResponse(c, "addSubcategory", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"added": added})
}

func (h *HttpEndpoints) removeSubcategory(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	categoryID := c.Param("categoryID")
	name := c.Param("name")

	if err := h.incidentService.RemoveSubcategory(token.ToActorContext(), categoryID, name); err != nil {
		apihelpers.ErrorResponse(c, "removeSubcategory", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "subcategory removed"})
}

func (h *HttpEndpoints) getOffenders(c *gin.Context) {
	offenders, err := h.incidentService.ListOffenders()
	if err != nil {
		apihelpers.ErrorResponse(c, "getOffenders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offenders": offenders})
}

func (h *HttpEndpoints) createOffender(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	var req namePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("createOffender: error binding payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	offender, err := h.incidentService.CreateOffender(token.ToActorContext(), req.Name)
	if err != nil {
		apihelpers.ErrorResponse(c, "createOffender", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"offender": offender})
}

func (h *HttpEndpoints) renameOffender(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	offenderID := c.Param("offenderID")

	var req namePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("renameOffender: error binding payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.incidentService.RenameOffender(token.ToActorContext(), offenderID, req.Name); err != nil {
		apihelpers.ErrorResponse(c, "renameOffender", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "offender renamed"})
}

func (h *HttpEndpoints) deleteOffender(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	offenderID := c.Param("offenderID")

	if err := h.incidentService.DeleteOffender(token.ToActorContext(), offenderID); err != nil {
		apihelpers.ErrorResponse(c, "deleteOffender", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "offender deleted"})
}

func (h *HttpEndpoints) getFields(c *gin.Context) {
	fields, err := h.incidentService.ListFields()
	if err != nil {
		apihelpers.ErrorResponse(c, "getFields", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fields": fields})
}

func (h *HttpEndpoints) createField(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	var req incidentTypes.FieldDefinition
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("createField: error binding payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	field, err := h.incidentService.CreateField(token.ToActorContext(), req)
	if err != nil {
		apihelpers.ErrorResponse(c, "createField", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"field": field})
}

func (h *HttpEndpoints) updateField(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	fieldID := c.Param("fieldID")

	var req incidentTypes.FieldDefinition
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("updateField: error binding payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.incidentService.UpdateField(token.ToActorContext(), fieldID, req); err != nil {
		apihelpers.ErrorResponse(c, "updateField", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "field updated"})
}

func (h *HttpEndpoints) deleteField(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	fieldID := c.Param("fieldID")

	if err := h.incidentService.DeleteField(token.ToActorContext(), fieldID); err != nil {
		apihelpers.ErrorResponse(c, "deleteField", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "field deleted"})
}
