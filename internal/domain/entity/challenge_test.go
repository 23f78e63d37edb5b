package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChallenge_CheckFlag_CaseSensitive(t *testing.T) {
	// Arrange
	challenge := &Challenge{
		ID:   1,
		Flag: "CTF{s3cr3t_Fl4g}",
	}

	// Act & Assert
	assert.True(t, challenge.CheckFlag("CTF{s3cr3t_Fl4g}", true), "Точное совпадение должно приниматься")
	assert.False(t, challenge.CheckFlag("ctf{s3cr3t_fl4g}", true), "При caseSensitive=true регистр имеет значение")
	assert.False(t, challenge.CheckFlag("CTF{wrong}", true))
	assert.False(t, challenge.CheckFlag("", true), "Пустой ответ не принимается")
}

func TestChallenge_CheckFlag_CaseInsensitive(t *testing.T) {
	// Arrange
	challenge := &Challenge{
		ID:   1,
		Flag: "CTF{s3cr3t_Fl4g}",
	}

	// Act & Assert
	assert.True(t, challenge.CheckFlag("CTF{s3cr3t_Fl4g}", false))
	assert.True(t, challenge.CheckFlag("ctf{s3cr3t_fl4g}", false), "При caseSensitive=false регистр игнорируется")
	assert.True(t, challenge.CheckFlag("CTF{S3CR3T_FL4G}", false))
	assert.False(t, challenge.CheckFlag("CTF{wrong}", false))
}

func TestChallenge_CheckFlag_NoTrimming(t *testing.T) {
	// Arrange
	challenge := &Challenge{Flag: "CTF{flag}"}

	// Act & Assert: пробелы не обрезаются, сравнение строгое
	assert.False(t, challenge.CheckFlag(" CTF{flag}", true))
	assert.False(t, challenge.CheckFlag("CTF{flag} ", true))
}
