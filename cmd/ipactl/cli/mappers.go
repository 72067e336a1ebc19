package cli

import (
	"reflect"

	"github.com/alecthomas/kong"

	"github.com/frobware/go-ipa"
)

// revisionMapper creates a Kong mapper for ipa.Revision.
func revisionMapper() kong.MapperFunc {
	return func(ctx *kong.DecodeContext, target reflect.Value) error {
		var s string
		if err := ctx.Scan.PopValueInto("revision", &s); err != nil {
			return err
		}
		rev, err := ipa.ParseRevision(s)
		if err != nil {
			return err
		}
		target.Set(reflect.ValueOf(rev))
		return nil
	}
}
