package models

// ResultStatus tags an OperationResult.
type ResultStatus string

const (
	ResultOK    ResultStatus = "ok"
	ResultError ResultStatus = "error"
)

// OperationResult is the envelope every money-moving operation answers with:
// either a transaction snapshot or a classified failure, never both.
// swagger:model OperationResult
type OperationResult struct {
	// example: ok
	Status      ResultStatus `json:"status"`
	Transaction *Transaction `json:"transaction,omitempty"`
	Data        any          `json:"data,omitempty"`
	Error       *Failure     `json:"error,omitempty"`
}

// NewTransactionResult wraps a transaction snapshot.
func NewTransactionResult(tx *Transaction) OperationResult {
	return OperationResult{Status: ResultOK, Transaction: tx}
}

// NewDataResult wraps a read-only payload.
func NewDataResult(data any) OperationResult {
	return OperationResult{Status: ResultOK, Data: data}
}

// NewErrorResult wraps err as a Failure.
func NewErrorResult(err error) OperationResult {
	return OperationResult{Status: ResultError, Error: NewFailure(err)}
}
