// Package testsupport holds fixtures shared by package tests: the RSVP page
// and the OpenAPI document describing its submission endpoint.
package testsupport

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formguard/pkg/document"
	pkgopenapi "github.com/goliatone/go-formguard/pkg/openapi"
)

// RSVPRequired lists the fields the RSVP endpoint declares as required, in
// authored order.
var RSVPRequired = []string{"name", "email", "guests"}

// RSVPPage is a rendered RSVP page with a second form bound to an external
// checkbox through the form attribute.
const RSVPPage = `<!DOCTYPE html>
<html>
<head><title>Tatiana &amp; Alex</title></head>
<body>
<h1>RSVP</h1>
<form name="rsvp" id="rsvp-form" action="/rsvp" method="post">
  <input type="text" name="name" value="Amy Pond">
  <input type="email" name="email">
  <textarea name="address"></textarea>
  <select name="guests">
    <option value="">Choose</option>
    <option value="1">1</option>
    <option value="2">2</option>
  </select>
  <input type="radio" name="hotel_preference" value="one_ocean">
  <input type="radio" name="hotel_preference" value="courtyard" checked>
  <textarea name="notes">  </textarea>
  <fieldset name="extras"><legend>Extras</legend></fieldset>
  <input type="image" name="banner" src="/banner.png">
  <button type="submit">Send</button>
</form>
<form id="newsletter" action="/newsletter" method="post">
  <input type="email" name="email" value="amy@example.com">
</form>
<input type="checkbox" name="subscribe" form="newsletter">
</body>
</html>`

// RSVPOpenAPI describes the RSVP submission endpoint.
const RSVPOpenAPI = `{
  "openapi": "3.0.3",
  "info": { "title": "RSVP", "version": "1.0.0" },
  "paths": {
    "/rsvp": {
      "post": {
        "operationId": "submitRSVP",
        "summary": "Submit an RSVP",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": { "$ref": "#/components/schemas/RSVPJSON" }
            },
            "application/x-www-form-urlencoded": {
              "schema": { "$ref": "#/components/schemas/RSVP" }
            }
          }
        },
        "responses": {
          "200": { "description": "accepted" }
        }
      }
    },
    "/newsletter": {
      "post": {
        "summary": "Subscribe",
        "requestBody": {
          "content": {
            "application/x-www-form-urlencoded": {
              "schema": {
                "type": "object",
                "required": ["email"],
                "properties": {
                  "email": { "type": "string" },
                  "subscribe": { "type": "boolean" }
                }
              }
            }
          }
        },
        "responses": {
          "204": { "description": "subscribed" }
        }
      }
    }
  },
  "components": {
    "schemas": {
      "RSVP": {
        "type": "object",
        "required": ["name", "email", "guests"],
        "properties": {
          "notes": { "type": "string" },
          "address": { "type": "string" },
          "email": { "type": "string", "format": "email" },
          "guests": { "type": "integer", "minimum": 1 },
          "hotel_preference": { "type": "string", "enum": ["one_ocean", "courtyard"] },
          "name": { "type": "string" },
          "party": {
            "type": "object",
            "required": ["size"],
            "properties": {
              "size": { "type": "integer" },
              "children": { "type": "integer" }
            }
          }
        }
      },
      "RSVPJSON": {
        "type": "object",
        "required": ["payload"],
        "properties": {
          "payload": { "type": "string" }
        }
      }
    }
  }
}`

// MustParsePage parses html or fails the test.
func MustParsePage(t *testing.T, html string) *document.Document {
	t.Helper()

	doc, err := document.Parse(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	return doc
}

// OpenAPIDocument wraps RSVPOpenAPI in a Document sourced from an fs path.
func OpenAPIDocument(t *testing.T) pkgopenapi.Document {
	t.Helper()

	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFS("rsvp.json"), []byte(RSVPOpenAPI))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return doc
}
