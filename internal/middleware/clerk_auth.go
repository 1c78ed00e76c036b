package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	svix "github.com/svix/svix-webhooks/go"
)

// InitClerk configura la clave global de Clerk para verificar sesiones
func InitClerk(secretKey string) {
	if secretKey == "" {
		log.Warn().Msg("CLERK_SECRET_KEY no configurada, autenticación con Clerk deshabilitada")
		return
	}

	clerk.SetKey(secretKey)
	log.Info().Msg("clerk inicializado")
}

// ClerkAuthMiddleware valida el token de sesión de Clerk y usa su subject como userId
func ClerkAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token no proporcionado"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := jwt.Verify(c.Request.Context(), &jwt.VerifyParams{
			Token: tokenString,
		})
		if err != nil {
			log.Debug().Err(err).Msg("verificación de token de clerk fallida")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		if claims.Subject == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido: no se pudo extraer el ID del usuario"})
			c.Abort()
			return
		}

		c.Set("userId", claims.Subject)
		c.Set("clerkClaims", claims)
		c.Next()
	}
}

// clerkWebhookEvent es el sobre de los eventos de usuario de Clerk
type clerkWebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		ID                    string `json:"id"`
		FirstName             string `json:"first_name"`
		LastName              string `json:"last_name"`
		PrimaryEmailAddressID string `json:"primary_email_address_id"`
		EmailAddresses        []struct {
			ID           string `json:"id"`
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// primaryEmail devuelve el email principal o, si no está marcado, el primero
func (e clerkWebhookEvent) primaryEmail() string {
	for _, addr := range e.Data.EmailAddresses {
		if addr.ID == e.Data.PrimaryEmailAddressID && addr.EmailAddress != "" {
			return addr.EmailAddress
		}
	}
	for _, addr := range e.Data.EmailAddresses {
		if addr.EmailAddress != "" {
			return addr.EmailAddress
		}
	}
	return ""
}

// ClerkWebhookHandler sincroniza los usuarios locales con los eventos de
// Clerk. La firma se verifica con Svix.
func (h *Handlers) ClerkWebhookHandler(webhookSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if webhookSecret == "" {
			log.Error().Msg("CLERK_WEBHOOK_SECRET no configurada")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Webhook no configurado"})
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No se pudo leer el cuerpo de la solicitud"})
			return
		}

		wh, err := svix.NewWebhook(webhookSecret)
		if err != nil {
			respondError(c, err)
			return
		}

		if err := wh.Verify(body, c.Request.Header); err != nil {
			log.Warn().Err(err).Msg("firma de webhook inválida")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Firma de webhook inválida"})
			return
		}

		var event clerkWebhookEvent
		if err := json.Unmarshal(body, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payload JSON inválido"})
			return
		}
		if event.Data.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el ID del usuario"})
			return
		}

		ctx := c.Request.Context()

		switch event.Type {
		case "user.created", "user.updated":
			email := event.primaryEmail()
			if email == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "No se encontró un email válido"})
				return
			}

			name := strings.TrimSpace(event.Data.FirstName + " " + event.Data.LastName)
			if name == "" {
				name = strings.Split(email, "@")[0] // Usar el usuario del email como nombre
			}

			user := &models.User{
				ID:    event.Data.ID,
				Email: strings.ToLower(email),
				Name:  name,
			}
			if err := h.userRepo.UpsertUser(ctx, user); err != nil {
				respondError(c, err)
				return
			}

			log.Info().Str("user_id", user.ID).Str("event", event.Type).Msg("usuario sincronizado desde clerk")
			c.JSON(http.StatusOK, gin.H{"message": "Usuario sincronizado"})

		case "user.deleted":
			if err := h.userRepo.DeleteUser(ctx, event.Data.ID); err != nil {
				respondError(c, err)
				return
			}

			log.Info().Str("user_id", event.Data.ID).Msg("usuario eliminado desde clerk")
			c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado"})

		default:
			c.JSON(http.StatusOK, gin.H{"message": "Evento recibido pero no procesado"})
		}
	}
}
