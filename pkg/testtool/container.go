// Package testtool helpers shared by integration tests and local profiling.
package testtool

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"qsite/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SetupContainer 通用函式來啟動測試容器
func SetupContainer(ctx context.Context, req testcontainers.ContainerRequest) (testcontainers.Container, string, string, error) {
	if len(req.ExposedPorts) == 0 {
		return nil, "", "", fmt.Errorf("container %s exposes no port", req.Image)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", "", err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, "", "", err
	}

	// "5432/tcp" -> nat.Port
	natPort, err := nat.NewPort("tcp", strings.TrimSuffix(req.ExposedPorts[0], "/tcp"))
	if err != nil {
		return nil, "", "", err
	}

	port, err := container.MappedPort(ctx, natPort)
	if err != nil {
		return nil, "", "", err
	}

	return container, host, port.Port(), nil
}

// PostgresRequest postgres:15 container request, user/password/db = qsite
func PostgresRequest() testcontainers.ContainerRequest {
	return testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "qsite",
			"POSTGRES_PASSWORD": "qsite",
			"POSTGRES_DB":       "qsite",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
}

// SetupPostgres start postgres container and return its DatabaseConfig
func SetupPostgres(ctx context.Context) (testcontainers.Container, config.DatabaseConfig, error) {
	container, host, port, err := SetupContainer(ctx, PostgresRequest())
	if err != nil {
		return nil, config.DatabaseConfig{}, err
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return nil, config.DatabaseConfig{}, err
	}
	return container, config.DatabaseConfig{
		Host:          host,
		Port:          portNum,
		User:          "qsite",
		Password:      "qsite",
		Database:      "qsite",
		SSLMode:       "disable",
		RetryCount:    5,
		RetryInterval: 1,
	}, nil
}
