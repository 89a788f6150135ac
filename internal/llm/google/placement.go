package google

import (
	"net/url"
	"strings"
)

// placement decides where the credential travels on a request. Some
// deployments only honour the header, others only the query parameter.
type placement interface {
	apply(rawURL, credential string) (string, map[string]string)
	String() string
}

type headerPlacement struct{}

func (headerPlacement) apply(rawURL, credential string) (string, map[string]string) {
	return rawURL, map[string]string{"x-goog-api-key": credential}
}

func (headerPlacement) String() string { return "header" }

type queryPlacement struct{}

func (queryPlacement) apply(rawURL, credential string) (string, map[string]string) {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "key=" + url.QueryEscape(credential), nil
}

func (queryPlacement) String() string { return "query" }

var defaultPlacements = []placement{headerPlacement{}, queryPlacement{}}
