package domain

type CreativeType string

const (
	CreativeTypeImage CreativeType = "image"
	CreativeTypeVideo CreativeType = "video"
)

func (t CreativeType) IsValid() bool {
	return t == CreativeTypeImage || t == CreativeTypeVideo
}

type Creative struct {
	ID           string       `json:"id"`
	Type         CreativeType `json:"type"`
	ThumbnailURL string       `json:"thumbnailUrl"`
}
