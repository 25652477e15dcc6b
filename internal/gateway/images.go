package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
)

// Image folders the API files event uploads under
const (
	SlotIntro  = "event-intro"
	SlotBanner = "event-banner"
)

// Upload is one file to send as multipart field "file"
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type uploadResult struct {
	ImgURL string `json:"imgUrl"`
}

// UploadEventImage uploads an event image into slot and returns its public URL
func (c *Client) UploadEventImage(ctx context.Context, slot string, file Upload) (string, error) {
	return c.upload(ctx, "image/upload/event/"+url.PathEscape(slot), file)
}

// DeleteImage removes a previously uploaded image
func (c *Client) DeleteImage(ctx context.Context, imgURL string) error {
	req := struct {
		ImgURL string `json:"imgUrl"`
	}{ImgURL: imgURL}
	return c.doJSON(ctx, http.MethodDelete, "image/delete", req, nil)
}

func (c *Client) upload(ctx context.Context, path string, file Upload) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Filename))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return "", fmt.Errorf("failed to write multipart part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(path), &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp uploadResult
	if err := c.do(req, path, &resp); err != nil {
		return "", err
	}
	if resp.ImgURL == "" {
		return "", &ParseError{Method: http.MethodPost, Path: path, Err: errors.New("missing imgUrl")}
	}
	return resp.ImgURL, nil
}
