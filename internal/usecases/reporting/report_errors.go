package reporting

import "errors"

var (
	ErrQueryRows   = errors.New("erro ao consultar insights do relatório")
	ErrEncodeCache = errors.New("erro ao serializar pedido de relatório")
)
