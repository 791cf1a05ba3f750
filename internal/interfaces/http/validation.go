package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
	"github.com/gofiber/fiber/v2"

	"github.com/ekspresi/itm-sub002/internal/domain"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	errInvalidBody = errors.New("cuerpo inválido")
)

func init() {
	validate = validator.New()

	spanish := es.New()
	uni := ut.New(spanish, spanish)
	translator, _ = uni.GetTranslator("es")
	_ = es_translations.RegisterDefaultTranslations(validate, translator)

	// Los mensajes nombran el campo JSON, no el del struct.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// parseBody decodifica el cuerpo y aplica las reglas `validate` del DTO.
// Un cuerpo ilegible devuelve errInvalidBody; una regla incumplida, domain.ErrInvalidInput.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return validateStruct(out)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Translate(translator))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

// bodyError responde el error devuelto por parseBody.
func bodyError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errInvalidBody) {
		return invalidBody(c)
	}
	return respondError(c, err)
}
