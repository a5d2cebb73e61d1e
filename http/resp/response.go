package resp

import (
	"fmt"
	"net/http"
	"net/url"
)

// DefaultErrMsg stands in for internal error detail
// when no contact message is configured.
const DefaultErrMsg = "Uh oh! We've run into an issue."

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w         http.ResponseWriter
	r         *http.Request
	closeBody bool
	code      int
	data      any
	msg       string
	url       *url.URL
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data stores the provided value for writing to the client.
//
// Used with Responder.Json.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err sets the status code http.StatusInternalServerError and logs the error.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e != nil {
			d.logger.Error(e.Error(), newLogContext(r.r, e, r.data, d.ctxKeys...))
		}

		return Code(http.StatusInternalServerError)(d, r)
	}
}

// GenericErr combines Err and Msg, setting a generic message in place
// of the error detail. The message is the string set by WithContactErrMsg,
// falling back to DefaultErrMsg.
//
// Used with Responder.Json.
func GenericErr(e error) Fn {
	return func(d Responder, r *Response) error {
		if err := Err(e)(d, r); err != nil {
			return err
		}

		msg := DefaultErrMsg
		if d.contactErrMsg != "" {
			msg = d.contactErrMsg
		}

		return Msg(msg)(d, r)
	}
}

// Msg sets the message to respond with.
//
// Used with Responder.Json.
func Msg(m string) Fn {
	return func(_ Responder, r *Response) error {
		r.msg = m
		return nil
	}
}

// Param adds the query parameter to the response's URL.
//
// If Url() has not been called before Param, ErrMissingData returns.
func Param(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		if r.url == nil {
			return fmt.Errorf("%w: Url() has not been called", ErrMissingData)
		}

		q := r.url.Query()
		q.Add(key, val)
		r.url.RawQuery = q.Encode()
		return nil
	}
}

// Params adds all of the query parameters to the response's URL.
//
// If Url() has not been called before Params, ErrMissingData returns.
func Params(params map[string]string) Fn {
	return func(_ Responder, r *Response) error {
		if r.url == nil {
			return fmt.Errorf("%w: Url() has not been called", ErrMissingData)
		}

		q := r.url.Query()
		for key, val := range params {
			q.Add(key, val)
		}
		r.url.RawQuery = q.Encode()
		return nil
	}
}

// Success sets the status code http.StatusOK and the message to respond with.
//
// Used with Responder.Json.
func Success(m string) Fn {
	return func(d Responder, r *Response) error {
		if err := Code(http.StatusOK)(d, r); err != nil {
			return err
		}

		return Msg(m)(d, r)
	}
}

// ToRoot sets the response's URL to the Responder's root URL.
//
// The Response receives its own copy,
// so options like Param leave the Responder's root URL untouched.
//
// Used with Responder.Redirect.
func ToRoot() Fn {
	return func(d Responder, r *Response) error {
		if d.rootUrl == nil {
			r.url = nil
			return nil
		}

		u := *d.rootUrl
		r.url = &u
		return nil
	}
}

// Url parses the provided string and sets the response's URL to the result.
//
// If u cannot be parsed, ErrInvalid returns.
func Url(u string) Fn {
	return func(_ Responder, r *Response) error {
		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			return fmt.Errorf("%w: u is not a valid URL: %v", ErrInvalid, err)
		}
		r.url = parsed
		return nil
	}
}
