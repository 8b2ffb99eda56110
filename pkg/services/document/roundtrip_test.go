package document

import (
	"reflect"
	"testing"
	"time"

	"github.com/gws-tools/scubacfg/pkg/models/domain"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func documentsEqual(a, b domain.ConfigDocument) bool {
	return reflect.DeepEqual(a, b)
}

func genDate() gopter.Gen {
	return gen.IntRange(0, 3650).Map(func(days int) *time.Time {
		t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
		return &t
	})
}

func genOptionalDate() gopter.Gen {
	return gen.Weighted([]gen.WeightedGen{
		{Weight: 1, Gen: gen.Const((*time.Time)(nil))},
		{Weight: 2, Gen: genDate()},
	})
}

func genPolicyID() gopter.Gen {
	products := []string{"GMAIL", "DRIVEDOCS", "CALENDAR", "MEET", "GROUPS"}
	return gopter.CombineGens(
		gen.IntRange(0, len(products)-1),
		gen.IntRange(1, 9),
		gen.IntRange(1, 9),
	).Map(func(values []interface{}) string {
		product := products[values[0].(int)]
		return "GWS." + product + "." +
			string(rune('0'+values[1].(int))) + "." +
			string(rune('0'+values[2].(int))) + "v0.5"
	})
}

func genOmissions() gopter.Gen {
	entry := gopter.CombineGens(
		genPolicyID(),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		genOptionalDate(),
	).Map(func(values []interface{}) domain.OmissionEntry {
		return domain.OmissionEntry{
			PolicyID:   values[0].(string),
			Rationale:  values[1].(string),
			Expiration: values[2].(*time.Time),
		}
	})
	return gen.SliceOf(entry).Map(nilIfEmptyOmissions)
}

func nilIfEmptyOmissions(entries []domain.OmissionEntry) []domain.OmissionEntry {
	if len(entries) == 0 {
		return nil
	}
	return entries
}

func genAnnotations() gopter.Gen {
	entry := gopter.CombineGens(
		genPolicyID(),
		gen.AlphaString(),
		gen.Bool(),
		genOptionalDate(),
	).Map(func(values []interface{}) domain.AnnotationEntry {
		return domain.AnnotationEntry{
			PolicyID:        values[0].(string),
			Comment:         values[1].(string),
			MarkedIncorrect: values[2].(bool),
			RemediationDate: values[3].(*time.Time),
		}
	})
	return gen.SliceOf(entry).Map(func(entries []domain.AnnotationEntry) []domain.AnnotationEntry {
		if len(entries) == 0 {
			return nil
		}
		return entries
	})
}

func genBreakGlass() gopter.Gen {
	acct := gen.Identifier().Map(func(local string) domain.BreakGlassAccount {
		return domain.BreakGlassAccount{Email: local + "@example.com"}
	})
	return gen.SliceOf(acct).Map(func(accts []domain.BreakGlassAccount) []domain.BreakGlassAccount {
		if len(accts) == 0 {
			return nil
		}
		return accts
	})
}

func genOutput() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("", "reports", "out/scuba"),
		gen.OneConstOf([]string(nil), []string{"json"}, []string{"json", "html"}),
		gen.Bool(),
		gen.Bool(),
	).Map(func(values []interface{}) domain.OutputSettings {
		return domain.OutputSettings{
			Directory: values[0].(string),
			Formats:   values[1].([]string),
			Quiet:     values[2].(bool),
			DarkMode:  values[3].(bool),
		}
	})
}

func genAuth() gopter.Gen {
	serviceAccount := gopter.CombineGens(
		gen.Identifier(),
		gen.Identifier(),
	).Map(func(values []interface{}) domain.AuthSettings {
		return domain.AuthSettings{
			Mode:            domain.AuthServiceAccount,
			CredentialsFile: "/creds/" + values[0].(string) + ".json",
			CustomerID:      "C" + values[1].(string),
			SubjectEmail:    values[0].(string) + "@example.com",
		}
	})
	return gen.Weighted([]gen.WeightedGen{
		{Weight: 2, Gen: serviceAccount},
		{Weight: 1, Gen: gen.Const(domain.AuthSettings{Mode: domain.AuthOAuth})},
		{Weight: 1, Gen: gen.Const(domain.AuthSettings{Mode: domain.AuthApplicationDefault})},
		{Weight: 1, Gen: gen.Const(domain.AuthSettings{})},
	})
}

func genDocument() gopter.Gen {
	return gopter.CombineGens(
		gen.Identifier(),
		gen.AlphaString(),
		gen.AlphaString(),
		gen.OneConstOf([]string{"GMAIL"}, []string{"GMAIL", "DRIVE"}, []string{"MEET", "GROUPS", "CALENDAR"}),
		genOmissions(),
		genAnnotations(),
		genBreakGlass(),
		genOutput(),
		genAuth(),
	).Map(func(values []interface{}) domain.ConfigDocument {
		return domain.ConfigDocument{
			OrgName:     values[0].(string),
			OrgUnit:     values[1].(string),
			Description: values[2].(string),
			Products:    values[3].([]string),
			Omissions:   values[4].([]domain.OmissionEntry),
			Annotations: values[5].([]domain.AnnotationEntry),
			BreakGlass:  values[6].([]domain.BreakGlassAccount),
			Output:      values[7].(domain.OutputSettings),
			Auth:        values[8].(domain.AuthSettings),
		}
	})
}

func TestRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("deserialize(serialize(doc)) == doc for YAML", prop.ForAll(
		func(doc domain.ConfigDocument) bool {
			data, err := Encode(doc, FormatYAML)
			if err != nil {
				return false
			}
			decoded, err := Decode(data)
			if err != nil {
				return false
			}
			return documentsEqual(doc, decoded)
		},
		genDocument(),
	))

	properties.Property("deserialize(serialize(doc)) == doc for JSON", prop.ForAll(
		func(doc domain.ConfigDocument) bool {
			data, err := Encode(doc, FormatJSON)
			if err != nil {
				return false
			}
			decoded, err := Decode(data)
			if err != nil {
				return false
			}
			return documentsEqual(doc, decoded)
		},
		genDocument(),
	))

	properties.TestingRun(t)
}
