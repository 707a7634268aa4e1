package client

//go:generate mockgen -destination=clientmock/client_mock.go -package=clientmock github.com/bountyhub/bh/internal/client Client

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/bountyhub/bh/internal/domain"
)

// Client — операции BountyHub API, от которых зависят команды CLI.
//
// Все методы синхронные, без retry и без кэширования. Реализация
// должна быть безопасна для конкурентного использования.
//
// Возвращаемый io.ReadCloser принадлежит вызывающему: его нужно
// закрыть на любом пути выхода, иначе соединение утечёт.
type Client interface {
	// DownloadJobArtifact открывает поток содержимого артефакта job'а.
	DownloadJobArtifact(ctx context.Context, jobID uuid.UUID, name string) (io.ReadCloser, error)

	// DeleteJobArtifact удаляет артефакт job'а.
	DeleteJobArtifact(ctx context.Context, jobID uuid.UUID, name string) error

	// DeleteJob удаляет job.
	DeleteJob(ctx context.Context, jobID uuid.UUID) error

	// DispatchScan запускает scan из последней ревизии workflow.
	// Nil inputs означает "без входных параметров".
	DispatchScan(ctx context.Context, workflowID uuid.UUID, scanName string, inputs domain.Inputs) error

	// DownloadBlobFile открывает поток содержимого файла из blob storage.
	DownloadBlobFile(ctx context.Context, path string) (io.ReadCloser, error)

	// UploadBlobFile загружает открытый локальный файл в blob storage по пути dst.
	UploadBlobFile(ctx context.Context, file *os.File, dst string) error

	// CreateRunnerRegistration создаёт регистрацию runner'а.
	CreateRunnerRegistration(ctx context.Context) (*domain.RunnerRegistration, error)

	// CreateBhlastDomain создаёт bhlast домен и возвращает его id.
	CreateBhlastDomain(ctx context.Context) (string, error)
}
