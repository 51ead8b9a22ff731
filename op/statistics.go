// Package op - evaluation statistics.
package op

// Statistics counts operator evaluations: residual calls, Jacobian-
// vector products, and full matrix materializations. The zero value is
// a valid empty record. Snapshots marshal to JSON for diagnostic
// logging.
type Statistics struct {
	NumberOfCalls       int `json:"number_of_calls"`
	NumberOfJacMuls     int `json:"number_of_jac_muls"`
	NumberOfMatrixEvals int `json:"number_of_matrix_evals"`
}

// IncrementCall records one residual evaluation.
func (s *Statistics) IncrementCall() { s.NumberOfCalls++ }

// IncrementJacMul records one Jacobian-vector product.
func (s *Statistics) IncrementJacMul() { s.NumberOfJacMuls++ }

// IncrementMatrix records one full matrix evaluation.
func (s *Statistics) IncrementMatrix() { s.NumberOfMatrixEvals++ }
