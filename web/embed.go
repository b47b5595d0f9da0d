package web

import "embed"

// TemplatesFS plantillas HTML renderizadas en el servidor.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS assets estáticos (css/js).
//
//go:embed static/*
var StaticFS embed.FS
