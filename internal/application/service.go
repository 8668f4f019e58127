package application

import (
	"mclink/internal/repository"
	"mclink/pkg/sheets"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type Service struct {
	Linking      *LinkingService
	Verification *VerificationService
	Export       *ExportService
}

type Options struct {
	MaxAccountsPerDiscord int
	CodeLength            int

	VerificationEnabled  bool
	MinAccountAgeDays    int
	MinServerJoinMinutes int

	SheetsOwnerEmail string
}

func NewService(repos *repository.Repository, sheetsClient *sheets.Client, opts Options, logger Logger) *Service {
	return &Service{
		Linking:      NewLinkingService(repos.Link, repos.Code, opts.MaxAccountsPerDiscord, opts.CodeLength, logger),
		Verification: NewVerificationService(opts.VerificationEnabled, opts.MinAccountAgeDays, opts.MinServerJoinMinutes),
		Export:       NewExportService(repos.Link, sheetsClient, opts.SheetsOwnerEmail, logger),
	}
}
