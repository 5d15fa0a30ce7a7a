package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/butiken/storefront/internal/services/contact"
	"github.com/butiken/storefront/internal/web/middleware"
	"github.com/butiken/storefront/internal/web/view"
)

// ContactHandler serves the contact form
type ContactHandler struct {
	contactService *contact.Service
	logger         *slog.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *contact.Service, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contactService: contactService, logger: logger}
}

// ContactPage renders the contact form
func (h *ContactHandler) ContactPage(w http.ResponseWriter, r *http.Request) {
	status := ""
	if flash := middleware.GetFlash(r.Context()); flash != nil {
		status = flash.Message
	}
	h.render(w, contact.Input{}, nil, status)
}

// Contact handles the form submission, including the optional attachment
func (h *ContactHandler) Contact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(contact.MaxAttachmentSize); err != nil {
		RenderError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	in := contact.Input{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Body:    r.PostFormValue("message"),
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, contact.MaxAttachmentSize+1))
		if err != nil {
			RenderError(w, http.StatusBadRequest, "Invalid attachment.")
			return
		}
		in.AttachmentName = header.Filename
		in.Attachment = data
	} else if !errors.Is(err, http.ErrMissingFile) {
		RenderError(w, http.StatusBadRequest, "Invalid attachment.")
		return
	}

	fieldErrs, err := h.contactService.Submit(r.Context(), in)
	if err != nil {
		h.logger.Error("contact submission failed",
			slog.String("error", err.Error()))
		h.render(w, in, nil, "Sending failed. Please try again!")
		return
	}
	if len(fieldErrs) > 0 {
		h.render(w, in, fieldErrs, "")
		return
	}

	middleware.SetFlash(w, "success", "Thank you! Your message has been sent.")
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}

func (h *ContactHandler) render(w http.ResponseWriter, in contact.Input, fieldErrs contact.FieldErrors, status string) {
	doc := view.Page("contact")
	doc = view.Replace(doc, "---name_value---", in.Name)
	doc = view.Replace(doc, "---email_value---", in.Email)
	doc = view.Replace(doc, "---subject_value---", in.Subject)
	doc = view.Replace(doc, "---message_value---", in.Body)
	doc = view.Replace(doc, "---email_error---", fieldErrs["email"])
	doc = view.Replace(doc, "---subject_error---", fieldErrs["subject"])
	doc = view.Replace(doc, "---message_error---", fieldErrs["message"])
	doc = view.Replace(doc, "---file_error---", fieldErrs["file"])
	doc = view.Replace(doc, "---submit_status---", status)
	writeHTML(w, http.StatusOK, doc)
}
