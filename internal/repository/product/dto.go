package product

import (
	"strconv"
	"strings"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// Hash field names for product keys. The text field denormalizes
// title+description+tags for full-text matching.
const (
	fieldID          = "id"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldCategory    = "category"
	fieldBrand       = "brand"
	fieldPrice       = "price"
	fieldRating      = "rating"
	fieldStock       = "stock"
	fieldTags        = "tags"
	fieldThumbnail   = "thumbnail"
	fieldText        = "text"
)

const tagSeparator = ","

func productToFields(p domain.Product) map[string]string {
	fields := map[string]string{
		fieldID:       strconv.Itoa(p.ID),
		fieldTitle:    p.Title,
		fieldCategory: p.Category,
		fieldPrice:    strconv.FormatFloat(p.Price, 'f', -1, 64),
		fieldText:     searchText(p),
	}
	if p.Description != "" {
		fields[fieldDescription] = p.Description
	}
	if p.Brand != "" {
		fields[fieldBrand] = p.Brand
	}
	if p.Rating > 0 {
		fields[fieldRating] = strconv.FormatFloat(p.Rating, 'f', -1, 64)
	}
	if p.Stock > 0 {
		fields[fieldStock] = strconv.Itoa(p.Stock)
	}
	if len(p.Tags) > 0 {
		fields[fieldTags] = strings.Join(p.Tags, tagSeparator)
	}
	if p.Thumbnail != "" {
		fields[fieldThumbnail] = p.Thumbnail
	}
	return fields
}

func productFromFields(fields map[string]string) domain.Product {
	p := domain.Product{
		Title:       fields[fieldTitle],
		Description: fields[fieldDescription],
		Category:    fields[fieldCategory],
		Brand:       fields[fieldBrand],
		Thumbnail:   fields[fieldThumbnail],
	}
	p.ID, _ = strconv.Atoi(fields[fieldID])
	p.Price, _ = strconv.ParseFloat(fields[fieldPrice], 64)
	p.Rating, _ = strconv.ParseFloat(fields[fieldRating], 64)
	p.Stock, _ = strconv.Atoi(fields[fieldStock])
	if tags := fields[fieldTags]; tags != "" {
		p.Tags = strings.Split(tags, tagSeparator)
	}
	return p
}

func searchText(p domain.Product) string {
	parts := make([]string, 0, 3)
	parts = append(parts, p.Title)
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if len(p.Tags) > 0 {
		parts = append(parts, strings.Join(p.Tags, " "))
	}
	return strings.Join(parts, " ")
}
