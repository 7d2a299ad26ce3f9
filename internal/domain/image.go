package domain

// Image описывает изображение товара, которое хранится в S3
type Image struct {
	ID          string // uuid
	Bucket      string
	ObjectKey   string
	Data        []byte
	Size        int64
	ContentType string // Example: "image/png"
}

func NewImage(id string, bucket string, objectKey string, data []byte, size int64, contentType string) *Image {
	return &Image{
		ID:          id,
		Bucket:      bucket,
		ObjectKey:   objectKey,
		Data:        data,
		Size:        size,
		ContentType: contentType,
	}
}
