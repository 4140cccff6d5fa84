// Package validation validates request payloads with go-playground/validator.
//
// [GetValidator] returns a process-wide validator configured to report JSON field
// names and to understand the custom "youtube" tag, which accepts the links
// described by [models.YouTubeLinkPattern].
//
//	type createRequest struct {
//	    Name string `json:"name" validate:"required,notblank"`
//	    Link string `json:"youtubeLink" validate:"required,youtube"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    // verr.Fields() lists each failing field with a readable message
//	}
package validation
