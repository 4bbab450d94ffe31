package syncing

import "errors"

var (
	// ErrSyncInProgress indica que já existe uma sincronização rodando
	ErrSyncInProgress = errors.New("sync already in progress")

	ErrGenerateRunID = errors.New("error generating sync run id")
)
