// Package storage abstracts the document blob store. LIVE uploads go to a
// durable backend; tests and PREVIEW flows use the in-memory store.
package storage

// Store persists uploaded document files and returns public URLs.
type Store interface {
	Put(objectKey string, data []byte, contentType string) (string, error)
	Delete(objectKey string) error
	URL(objectKey string) string
}

// ContentTypeFor maps a file extension to its Content-Type.
func ContentTypeFor(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
