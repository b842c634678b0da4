package notify

import (
	"crypto/tls"
	"errors"
	"log/slog"
	"net/smtp"
	"net/textproto"
	"strconv"
	"sync"
	"time"

	"github.com/knadh/smtppool"
)

// SmtpClients round robins sends over a list of pooled SMTP connections.
// Notifications fire from per-request goroutines, so counter and pool access
// is guarded by mu; the send itself runs outside the lock.
type SmtpClients struct {
	servers        SmtpServerList
	connectionPool []*smtppool.Pool
	counter        int
	mu             sync.Mutex
}

func NewSmtpClients(config SmtpServerList) (*SmtpClients, error) {
	pools, err := initConnectionPool(config)
	if err != nil {
		return nil, err
	}
	sc := &SmtpClients{
		servers:        config,
		counter:        0,
		connectionPool: pools,
	}
	return sc, nil
}

func (sc *SmtpClients) SendMail(
	to []string,
	subject string,
	htmlContent string,
) error {
	sc.mu.Lock()
	sc.counter += 1
	if len(sc.connectionPool) < 1 {
		pools, err := initConnectionPool(sc.servers)
		if err != nil {
			sc.mu.Unlock()
			return err
		}
		sc.connectionPool = pools
	}
	index := sc.counter % len(sc.connectionPool)
	selectedServer := sc.connectionPool[index]
	sc.mu.Unlock()

	e := smtppool.Email{
		To:      to,
		From:    sc.servers.From,
		Sender:  sc.servers.Sender,
		ReplyTo: sc.servers.ReplyTo,
		Subject: subject,
		HTML:    []byte(htmlContent),
		Headers: textproto.MIMEHeader{},
	}
	err := selectedServer.Send(e)

	if err != nil {
		// close and try to reconnect
		slog.Error("error when trying to send email", slog.String("error", err.Error()))

		pool, errReconnect := connectToPool(sc.servers.Servers[index])
		if errReconnect != nil {
			slog.Error("cannot reconnect pool", slog.String("error", errReconnect.Error()), slog.String("server", sc.servers.Servers[index].Host))
		} else {
			slog.Info("reconnected to pool", slog.String("server", sc.servers.Servers[index].Host))
			sc.mu.Lock()
			sc.connectionPool[index] = pool
			sc.mu.Unlock()
		}
	}
	return err
}

func initConnectionPool(serverList SmtpServerList) ([]*smtppool.Pool, error) {
	connectionPools := []*smtppool.Pool{}
	for _, server := range serverList.Servers {
		pool, err := connectToPool(server)
		if err != nil {
			slog.Error("error setting up connection pool", slog.String("error", err.Error()), slog.String("server", server.Address()))
			continue
		}
		connectionPools = append(connectionPools, pool)
	}
	if len(connectionPools) < 1 {
		return nil, errors.New("no smtp server connection in the pool")
	}
	return connectionPools, nil
}

func connectToPool(server SmtpServer) (*smtppool.Pool, error) {
	auth := smtp.PlainAuth(
		"",
		server.AuthData.Username,
		server.AuthData.Password,
		server.Host,
	)
	if server.AuthData.Username == "" && server.AuthData.Password == "" {
		auth = nil
	}

	tlsOpts := &tls.Config{
		InsecureSkipVerify: server.InsecureSkipVerify,
		ServerName:         server.Host,
	}
	port, err := strconv.Atoi(server.Port)
	if err != nil {
		return nil, err
	}

	pool, err := smtppool.New(smtppool.Opt{
		Host:            server.Host,
		Port:            port,
		MaxConns:        server.Connections,
		IdleTimeout:     time.Duration(server.SendTimeout) * time.Second,
		PoolWaitTimeout: time.Duration(server.SendTimeout) * time.Second,
		TLSConfig:       tlsOpts,
		Auth:            auth,
	})
	return pool, err
}
