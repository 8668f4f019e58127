package service

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type (
	// Service is a long-running component with an explicit lifecycle,
	// implemented by the Discord bot and the HTTP API server.
	Service interface {
		Init() error
		Run(ctx context.Context) error
		Stop()
	}
	Manager struct {
		log      Logger
		services []Service
	}
)

func NewManager(log Logger) *Manager {
	return &Manager{log: log}
}

func (m *Manager) AddService(service ...Service) {
	m.services = append(m.services, service...)
}

// Run starts every registered service and blocks until the context is
// cancelled or an interrupt arrives, then stops them in reverse order.
func (m *Manager) Run(ctx context.Context) error {
	for count, svc := range m.services {
		if err := svc.Init(); err != nil {
			for i := count - 1; i >= 0; i-- {
				m.services[i].Stop()
			}
			return err
		}
		go func(s Service) {
			if err := s.Run(ctx); err != nil {
				m.log.Error("service run error: %s", err.Error())
			}
		}(svc)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
	case <-ctx.Done():
	}

	m.stop()
	return nil
}

func (m *Manager) stop() {
	m.log.Info("stopping services")
	for i := len(m.services) - 1; i >= 0; i-- {
		m.services[i].Stop()
	}
}
