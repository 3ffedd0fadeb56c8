package analyzer

import (
	"strings"
)

var httpMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

func isHTTPMethod(method string) bool {
	method = strings.ToUpper(method)
	for _, m := range httpMethods {
		if m == method {
			return true
		}
	}
	return false
}

// appendMethod adds method to methods unless already present, keeping declaration order.
func appendMethod(methods []string, method string) []string {
	for _, m := range methods {
		if strings.EqualFold(m, method) {
			return methods
		}
	}
	return append(methods, method)
}
