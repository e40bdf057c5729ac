package repository

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestVectorLiteral(t *testing.T) {
	got := vectorLiteral([]float64{0.5, -1, 0.25})
	assert.Equal(t, got, "[0.5,-1,0.25]")
}

func TestVectorLiteralEmpty(t *testing.T) {
	assert.Equal(t, vectorLiteral(nil), "[]")
}
