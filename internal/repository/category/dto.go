package category

import (
	"encoding/binary"
	"math"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// Hash field names for category keys.
const (
	fieldID          = "id"
	fieldName        = "name"
	fieldDescription = "description"
	fieldEmbedding   = "embedding"
)

func categoryToFields(c domain.Category, vector []float32) map[string]string {
	fields := map[string]string{
		fieldID:        c.ID,
		fieldName:      c.Name,
		fieldEmbedding: vectorToBytes(vector),
	}
	if c.Description != "" {
		fields[fieldDescription] = c.Description
	}
	return fields
}

func categoryFromFields(fields map[string]string) domain.Category {
	return domain.Category{
		ID:          fields[fieldID],
		Name:        fields[fieldName],
		Description: fields[fieldDescription],
	}
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
