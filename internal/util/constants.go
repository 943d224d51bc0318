package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// RequestIDKey is the gin context key and response header carrying the request id.
const RequestIDKey = "X-Request-ID"

// Upload content classes, matched as prefixes of the sniffed content type.
const (
	MimeImage = "image/"
	MimeAudio = "audio/"
	MimeVideo = "video/"
)

var AllowedUploadExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".mp3", ".wav", ".ogg", ".mp4", ".webm"}
