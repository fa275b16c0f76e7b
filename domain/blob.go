package domain

// Blob is a typed binary attachment.
type Blob struct {
	MIME    string `validate:"required"`
	Content []byte
}
