package controllers

import (
	"net/http"
	"strings"

	"github.com/sejacapricho/printshop-backend/api/responses"
	"github.com/sejacapricho/printshop-backend/api/validators"
	settingsvc "github.com/sejacapricho/printshop-backend/internal/settings"
	"github.com/sejacapricho/printshop-backend/pkg/enums"
	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
	"github.com/sejacapricho/printshop-backend/pkg/logger"
)

type updateSettingRequest struct {
	Key         string `json:"key" validate:"required"`
	Value       string `json:"value" validate:"required"`
	ValueType   string `json:"value_type"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type updateSettingsRequest struct {
	Settings []updateSettingRequest `json:"settings" validate:"required,min=1,dive"`
}

// ListSettings returns every configuration row.
func ListSettings(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"settings": rows})
	}
}

// UpdateSettings applies a batch of configuration writes. The batch is
// all-or-nothing; one bad value rejects the whole request.
func UpdateSettings(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var payload updateSettingsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inputs := make([]settingsvc.UpdateInput, 0, len(payload.Settings))
		for _, item := range payload.Settings {
			var valueType enums.ConfigValueType
			if raw := strings.TrimSpace(item.ValueType); raw != "" {
				parsed, err := enums.ParseConfigValueType(raw)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid value type"))
					return
				}
				valueType = parsed
			}
			inputs = append(inputs, settingsvc.UpdateInput{
				Key:         item.Key,
				Value:       item.Value,
				ValueType:   valueType,
				Category:    item.Category,
				Description: item.Description,
			})
		}

		if err := svc.Update(r.Context(), inputs); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}
