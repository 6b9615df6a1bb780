package uibatch

// Matrix4 is a 4x4 matrix in row-major order:
//
//	| M[0]  M[1]  M[2]  M[3]  |
//	| M[4]  M[5]  M[6]  M[7]  |
//	| M[8]  M[9]  M[10] M[11] |
//	| M[12] M[13] M[14] M[15] |
//
// Column vectors are transformed as v' = M * v.
type Matrix4 [16]float32

// Identity4 returns the identity matrix.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m Matrix4) At(r, c int) float32 {
	return m[r*4+c]
}

// Transform applies m to the point (x, y, 0, 1) and returns x and y.
func (m Matrix4) Transform(x, y float32) (float32, float32) {
	tx := m[0]*x + m[1]*y + m[3]
	ty := m[4]*x + m[5]*y + m[7]
	w := m[12]*x + m[13]*y + m[15]
	if w != 0 && w != 1 {
		tx /= w
		ty /= w
	}
	return tx, ty
}

// ColumnMajor returns the elements in column-major order, as WGSL
// mat4x4<f32> expects them in a uniform buffer.
func (m Matrix4) ColumnMajor() [16]float32 {
	var out [16]float32
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[c*4+r] = m[r*4+c]
		}
	}
	return out
}

// UIProjection returns the 2D projection for a target of the given pixel
// size. It maps (0,0) to the top-left of clip space (-1, 1) and
// (width, height) to the bottom-right (1, -1). Depth passes through.
func UIProjection(width, height int) Matrix4 {
	if width <= 0 || height <= 0 {
		return Identity4()
	}
	sx := 2 / float32(width)
	sy := -2 / float32(height)
	return Matrix4{
		sx, 0, 0, -1,
		0, sy, 0, 1,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// White is the material diffuse color used for every UI batch.
var White = [4]float32{1, 1, 1, 1}
