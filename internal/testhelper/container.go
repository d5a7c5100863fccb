// Package testhelper starts throwaway PostgreSQL and Redis containers for
// integration tests and seeds rows into them.
package testhelper

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// shared is a container started at most once per test binary.
// The container lives until the process exits.
type shared struct {
	once sync.Once
	addr string
	err  error
}

type containerSpec struct {
	image     string
	port      string
	env       map[string]string
	readyLog  string
	readyHits int
}

func (s *shared) get(t *testing.T, spec containerSpec) string {
	t.Helper()
	if testing.Short() {
		t.Skipf("testhelper: %s container skipped in short mode", spec.image)
	}

	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()
		s.addr, s.err = startContainer(ctx, spec)
	})
	if s.err != nil {
		t.Fatalf("testhelper: %s: %v", spec.image, s.err)
	}
	return s.addr
}

// startContainer runs spec and returns the host:port of its exposed port.
func startContainer(ctx context.Context, spec containerSpec) (string, error) {
	hits := max(spec.readyHits, 1)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        spec.image,
			ExposedPorts: []string{spec.port + "/tcp"},
			Env:          spec.env,
			WaitingFor: wait.ForLog(spec.readyLog).
				WithOccurrence(hits).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, nat.Port(spec.port))
	if err != nil {
		return "", fmt.Errorf("mapped port %s: %w", spec.port, err)
	}
	return net.JoinHostPort(host, port.Port()), nil
}
