package cyclic

// matrix is a binary matrix, one row per element, bit i of a row is column i.
type matrix []uint32

func newMatrix(rows int) matrix {
	return make(matrix, rows)
}

// mul multiplies m by column vector v over GF(2).
// Bit j of the result is <row j, v>.
func (m matrix) mul(v uint32) uint32 {
	var r uint32
	for j, row := range m {
		r |= parity(row&v) << uint(j)
	}
	return r
}

// genParityMatrix makes the parity part of the systematic generator matrix
// in transposed form: parity bit j of a codeword is <row j, data>.
func genParityMatrix(g uint32) matrix {
	m := newMatrix(N - K)
	for i := 0; i < K; i++ {
		rem := PolyRem(1<<uint(N-K+i), g)
		for j := 0; j < N-K; j++ {
			if rem>>uint(j)&1 == 1 {
				m[j] |= 1 << uint(i)
			}
		}
	}
	return m
}

// genCheckMatrix makes the parity-check matrix H (N-K rows, N columns),
// H * word is the syndrome word mod g.
//
// It's derived from the generator matrix in the standard way:
// H = [P^T | I] with the columns laid out like the codeword bits.
func genCheckMatrix(p matrix) matrix {
	h := newMatrix(len(p))
	for j, row := range p {
		h[j] = row<<uint(N-K) | 1<<uint(j)
	}
	return h
}

var (
	parityMatrix = genParityMatrix(Generator)
	checkMatrix  = genCheckMatrix(parityMatrix)
)

// GeneratorMatrix returns the K x N systematic generator matrix,
// row i is the codeword of message 1<<i.
func GeneratorMatrix() []uint32 {
	rows := make([]uint32, K)
	for i := range rows {
		d := uint32(1) << uint(i)
		rows[i] = d<<uint(N-K) | parityMatrix.mul(d)
	}
	return rows
}

// ParityCheckMatrix returns the (N-K) x N parity-check matrix,
// row j selects the codeword bits that sum to syndrome bit j.
func ParityCheckMatrix() []uint32 {
	rows := make([]uint32, len(checkMatrix))
	copy(rows, checkMatrix)
	return rows
}
