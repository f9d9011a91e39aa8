package services

import (
	"context"

	"github.com/prudhvinik1/estatesync/internal/models"
	"github.com/prudhvinik1/estatesync/internal/repositories"
	"github.com/prudhvinik1/estatesync/internal/store"
)

type TaskStore struct {
	*store.Store[models.Task]
}

// Toggle flips the done flag of a locally held task. Unknown ids are ignored.
func (s *TaskStore) Toggle(ctx context.Context, id string) error {
	task, ok := s.Get(id)
	if !ok {
		return nil
	}
	return s.Update(ctx, id, repositories.Document{"done": !task.Done})
}
