// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperr "taskdeck/cli/internal/errors"
)

// Upload posts a multipart form with fields file, type and related_id to /upload.
func (h *HTTP) Upload(ctx context.Context, req UploadRequest) (*UploadedFile, error) {
	if req.Content == nil || strings.TrimSpace(req.Filename) == "" {
		return nil, apperr.New(apperr.RequestFailure, "upload needs a file name and content")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", req.Filename)
	if err != nil {
		return nil, apperr.Wrap(apperr.RequestFailure, "build upload", err)
	}
	if _, err := io.Copy(part, req.Content); err != nil {
		return nil, apperr.Wrap(apperr.RequestFailure, "read upload content", err)
	}
	if err := errors.Join(
		mw.WriteField("type", req.Type),
		mw.WriteField("related_id", strconv.FormatInt(req.RelatedID, 10)),
		mw.Close(),
	); err != nil {
		return nil, apperr.Wrap(apperr.RequestFailure, "build upload", err)
	}

	raw, err := h.do(ctx, http.MethodPost, "/upload", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var out UploadedFile
	if err := decodeBody(raw, &out); err != nil {
		return nil, apperr.Wrap(apperr.DecodeFailure, "unexpected response from /upload", err)
	}
	return &out, nil
}

// GetFile calls GET /files/{name} and copies the content to w.
func (h *HTTP) GetFile(ctx context.Context, name string, w io.Writer) (int64, error) {
	raw, err := h.do(ctx, http.MethodGet, "/files/"+url.PathEscape(name), nil, "")
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(w, bytes.NewReader(raw))
	if err != nil {
		return n, apperr.Wrap(apperr.RequestFailure, "write file", err)
	}
	return n, nil
}
