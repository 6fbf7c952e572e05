package model

// Attachment is a file owned by a record. StorageKey is the object key in the
// attachment bucket; URL is materialized when the record is rendered.
type Attachment struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	SizeBytes      int64  `json:"sizeBytes"`
	MimeType       string `json:"mimeType"`
	URL            string `json:"url,omitempty"`
	StorageKey     string `json:"storageKey,omitempty"`
	UploadProgress *int   `json:"uploadProgress,omitempty"`
}

func cloneAttachments(in []Attachment) []Attachment {
	if in == nil {
		return nil
	}
	out := make([]Attachment, len(in))
	copy(out, in)
	return out
}
