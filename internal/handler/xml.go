package handler

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dan9191/usuarios-service/internal/models"
	"github.com/beevik/etree"
)

// wantsXML reports whether an XML media type is strictly preferred over
// every other type in the Accept header. Ties go to JSON.
func wantsXML(r *http.Request) bool {
	xmlQ, otherQ := 0.0, 0.0
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if v, ok := params["q"]; ok {
			if q, err = strconv.ParseFloat(v, 64); err != nil {
				continue
			}
		}
		switch mediaType {
		case "application/xml", "text/xml":
			xmlQ = max(xmlQ, q)
		default:
			otherQ = max(otherQ, q)
		}
	}
	return xmlQ > 0 && xmlQ > otherQ
}

// renderXML builds the response envelope:
//
//	<response>
//	  <message>...</message>
//	  <usuarios><usuario id="1">...</usuario></usuarios>
//	</response>
func renderXML(message, key string, payload any) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("response")
	root.CreateElement("message").SetText(message)

	switch p := payload.(type) {
	case nil:
	case []models.User:
		list := root.CreateElement(key)
		for _, u := range p {
			appendUser(list, "usuario", u)
		}
	case *models.User:
		if p != nil {
			appendUser(root, key, *p)
		}
	default:
		return nil, fmt.Errorf("unsupported payload type %T", payload)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func appendUser(parent *etree.Element, tag string, u models.User) {
	el := parent.CreateElement(tag)
	el.CreateAttr("id", strconv.Itoa(u.ID))
	el.CreateElement("name").SetText(u.Name)
	el.CreateElement("email").SetText(u.Email)
	el.CreateElement("password").SetText(u.Password)
}
