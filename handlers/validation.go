package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SkillLevels are the accepted skill levels of a generation request.
var SkillLevels = map[string]bool{"beginner": true, "intermediate": true, "advanced": true}

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the custom binding rules on gin's validator:
// skillpair ([name, level] with a known level) and objectid (hex ObjectID).
// Field names in errors use the json tag.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		if registerErr = v.RegisterValidation("skillpair", validSkillPair); registerErr != nil {
			return
		}
		registerErr = v.RegisterValidation("objectid", validObjectID)
	})
	return registerErr
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func validSkillPair(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Slice || f.Len() != 2 {
		return false
	}
	if f.Index(0).Kind() != reflect.String || f.Index(1).Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(f.Index(0).String()) != "" && SkillLevels[f.Index(1).String()]
}

func validObjectID(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return primitive.IsValidObjectID(fl.Field().String())
}

func init() {
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
}
