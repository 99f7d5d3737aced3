// Package response decodes Mist API responses into tolerant record values.
package response

import (
	"io"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/mist-tools/misttopo/record"
)

// Decode consumes and closes the response body, validates the status code
// (expects 200 OK) and parses the payload into a record value.
//
// Usage:
//
//	resp, err := c.http.Do(req)
//	return response.Decode(resp, err, "failed to get organization inventory")
func Decode(resp *http.Response, err error, errorMsg string) (record.Value, error) {
	if err != nil {
		return record.Value{}, errors.Wrap(err, errorMsg)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		//nolint:wrapcheck // Creating new error for non-expected status, no source error to wrap
		return record.Value{}, errors.Newf("API error: status=%d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return record.Value{}, errors.Wrap(err, errorMsg)
	}

	v, err := record.Decode(body)
	if err != nil {
		return record.Value{}, errors.Wrap(err, errorMsg)
	}

	return v, nil
}

// DecodeList is Decode for endpoints that return a JSON array. A payload of
// any other shape yields an empty list, matching the assembler's contract
// that malformed bulk responses degrade to empty input rather than failing.
func DecodeList(resp *http.Response, err error, errorMsg string) ([]record.Value, error) {
	v, err := Decode(resp, err, errorMsg)
	if err != nil {
		return nil, err
	}
	return v.Items(), nil
}
