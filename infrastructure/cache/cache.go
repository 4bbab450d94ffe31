package cache

//go:generate mockgen -source=$GOFILE -destination=mocks/$GOFILE -package=mocks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Entry é o resultado de uma leitura. Generation é a geração vigente no momento
// da leitura e deve ser repassada ao Set do relatório montado após um miss.
type Entry struct {
	Value      []byte
	Found      bool
	Generation int64
}

// ReportCache guarda relatórios já montados por um tempo fixo.
// InvalidateAll descarta todas as entradas de uma vez e avança a geração;
// um Set feito com uma geração anterior nunca fica visível.
type ReportCache interface {
	Get(ctx context.Context, key string) (Entry, error)
	Set(ctx context.Context, key string, generation int64, value []byte) error
	InvalidateAll(ctx context.Context) error
}

// Fingerprint transforma a serialização normalizada de um pedido em chave de cache
func Fingerprint(normalized []byte) string {
	sum := sha256.Sum256(normalized)
	return hex.EncodeToString(sum[:])
}
