package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"hrms-portal/internal/workflow"
)

// Resource is a REST collection exposing create, update, delete and list.
type Resource[T any] struct {
	c    *Client
	path string
	part string
}

// NewResource binds a collection such as "/benefits".
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: path}
}

// WithPayloadPart makes creates with attachments send a multipart body whose
// JSON payload travels in the named part.
func (r *Resource[T]) WithPayloadPart(name string) *Resource[T] {
	r.part = name
	return r
}

func (r *Resource[T]) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func (r *Resource[T]) Create(ctx context.Context, payload T, attachments []workflow.Attachment) (T, error) {
	var out T
	req, err := r.createRequest(payload, attachments)
	if err != nil {
		return out, err
	}
	err = r.c.do(ctx, req, &out)
	return out, err
}

func (r *Resource[T]) createRequest(payload T, attachments []workflow.Attachment) (request, error) {
	op := "create " + r.path
	if len(attachments) == 0 || r.part == "" {
		return jsonRequest(op, http.MethodPost, r.path, payload)
	}

	body, contentType, err := multipartBody(r.part, payload, attachments)
	if err != nil {
		return request{}, fmt.Errorf("build %s body: %w", op, err)
	}
	return request{op: op, method: http.MethodPost, path: r.path, body: body, contentType: contentType}, nil
}

func (r *Resource[T]) Update(ctx context.Context, id string, payload T) (T, error) {
	var out T
	req, err := jsonRequest("update "+r.path, http.MethodPut, r.item(id), payload)
	if err != nil {
		return out, err
	}
	err = r.c.do(ctx, req, &out)
	return out, err
}

// Delete treats any 2xx, with or without a body, as success.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, request{op: "delete " + r.path, method: http.MethodDelete, path: r.item(id)}, nil)
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	err := r.c.do(ctx, request{op: "list " + r.path, method: http.MethodGet, path: r.path}, &out)
	if out == nil && err == nil {
		out = []T{}
	}
	return out, err
}

func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := r.c.do(ctx, request{op: "get " + r.path, method: http.MethodGet, path: r.item(id)}, &out)
	return out, err
}

func multipartBody(part string, payload any, attachments []workflow.Attachment) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, part))
	h.Set("Content-Type", "application/json")
	pw, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if err := json.NewEncoder(pw).Encode(payload); err != nil {
		return nil, "", err
	}

	for _, a := range attachments {
		if err := writeAttachment(mw, a); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func writeAttachment(mw *multipart.Writer, a workflow.Attachment) error {
	src, err := a.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", a.Field, err)
	}
	defer src.Close()

	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, a.Field, a.Filename))
	h.Set("Content-Type", contentType)
	w, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
