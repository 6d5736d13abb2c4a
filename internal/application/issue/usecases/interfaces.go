package usecases

import (
	"context"
	"io"

	"mainta/internal/application/issue/dto"
)

type CreateIssueExecutor interface {
	Execute(ctx context.Context, cmd CreateIssueCommand) (*dto.IssueDTO, error)
}

type AssignIssueExecutor interface {
	Execute(ctx context.Context, cmd AssignIssueCommand) (*dto.IssueDTO, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.IssueDTO, error)
}

type CloseIssueExecutor interface {
	Execute(ctx context.Context, cmd CloseIssueCommand) (*dto.IssueDTO, error)
}

type AddNoteExecutor interface {
	Execute(ctx context.Context, cmd AddNoteCommand) (*dto.NoteDTO, error)
}

type GetIssueExecutor interface {
	Execute(ctx context.Context, query GetIssueQuery) (*dto.IssueDTO, error)
}

type ListIssuesExecutor interface {
	Execute(ctx context.Context, query ListIssuesQuery) (*ListIssuesResult, error)
}

type ExportIssuesExecutor interface {
	Execute(ctx context.Context, query ExportIssuesQuery, w io.Writer) error
}
