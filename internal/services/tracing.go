package services

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/yungbote/codelearn-backend/internal/services")
