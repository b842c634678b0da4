package db

import (
	"fmt"
	"log/slog"
	"os"
)

// DBConfigFromYamlObj builds a DBConfig from the parsed yaml config, with the
// credentials optionally overridden from the environment so that secrets can
// stay out of the config file.
func DBConfigFromYamlObj(yamlObj DBConfigYaml, usernameEnv string, passwordEnv string) DBConfig {
	username := yamlObj.Username
	if v := os.Getenv(usernameEnv); v != "" {
		username = v
	}
	password := yamlObj.Password
	if v := os.Getenv(passwordEnv); v != "" {
		password = v
	}

	if yamlObj.ConnectionStr == "" || username == "" || password == "" {
		slog.Error("couldn't read DB credentials")
		panic("couldn't read DB credentials")
	}
	uri := fmt.Sprintf(`mongodb%s://%s:%s@%s`, yamlObj.ConnectionPrefix, username, password, yamlObj.ConnectionStr)

	dbName := yamlObj.DBName
	if dbName == "" {
		dbName = "theftAppDB"
	}

	timeout := yamlObj.Timeout
	if timeout < 1 {
		timeout = 30
	}

	return DBConfig{
		URI:             uri,
		DBName:          dbName,
		Timeout:         timeout,
		IdleConnTimeout: yamlObj.IdleConnTimeout,
		MaxPoolSize:     uint64(yamlObj.MaxPoolSize),
		NoCursorTimeout: yamlObj.UseNoCursorTimeout,
	}
}
