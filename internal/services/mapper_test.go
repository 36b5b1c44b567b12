package services_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ndinv/sql-inventory/internal/models"
	"github.com/ndinv/sql-inventory/internal/services"
	srvErrors "github.com/ndinv/sql-inventory/pkg/errors"
)

var _ = Describe("RowMapper", func() {
	var mapper *services.RowMapper

	BeforeEach(func() {
		mapper = services.NewRowMapper()
	})

	Context("host name", func() {
		// Given a row with the host field
		// When the row is mapped
		// Then the host should be named after the trimmed value
		It("should read and trim the host field", func() {
			input := parseInputs(`- {name: switches, query: SELECT 1, host_field: name}`)[0]

			res := mapper.Map(input, models.NewRow([]string{"name"}, []any{"  sw1 "}))

			Expect(res.Skipped()).To(BeFalse())
			Expect(res.Host.Name).To(Equal("sw1"))
			Expect(res.Host.Vars).To(BeEmpty())
			Expect(res.Groups).To(BeEmpty())
		})

		It("should stringify non-string host values", func() {
			input := parseInputs(`- {name: ids, query: SELECT 1, host_field: id}`)[0]

			res := mapper.Map(input, models.NewRow([]string{"id"}, []any{int32(42)}))

			Expect(res.Host.Name).To(Equal("42"))
		})

		DescribeTable("should skip rows that cannot name a host",
			func(columns []string, values []any, reason srvErrors.SkipReason) {
				input := parseInputs(`- {name: switches, query: SELECT 1, host_field: name}`)[0]

				res := mapper.Map(input, models.NewRow(columns, values))

				Expect(res.Skipped()).To(BeTrue())
				Expect(res.Host).To(BeNil())
				Expect(res.Skip.Input).To(Equal("switches"))
				Expect(res.Skip.Reason).To(Equal(reason))
			},
			Entry("missing column", []string{"site"}, []any{"nyc"}, srvErrors.SkipHostFieldMissing),
			Entry("NULL value", []string{"name"}, []any{nil}, srvErrors.SkipHostEmpty),
			Entry("empty value", []string{"name"}, []any{""}, srvErrors.SkipHostEmpty),
			Entry("blank value", []string{"name"}, []any{"   "}, srvErrors.SkipHostEmpty),
		)
	})

	Context("vars", func() {
		var input models.Input

		BeforeEach(func() {
			input = parseInputs(`
- name: switches
  query: SELECT 1
  host_field: name
  var_fields: {ip: ansible_host, ports: port_count, uptime: uptime_days, up: is_up, serial: serial}
`)[0]
		})

		// Given a row with typed columns
		// When the row is mapped
		// Then variables should be renamed and keep JSON friendly types
		It("should rename columns and coerce values", func() {
			row := models.NewRow(
				[]string{"name", "ip", "ports", "uptime", "up", "serial"},
				[]any{"sw1", "10.0.0.1", int32(48), float32(1.5), true, []byte("FOC123")},
			)

			res := mapper.Map(input, row)

			Expect(res.Host.Vars).To(Equal(map[string]any{
				"ansible_host": "10.0.0.1",
				"port_count":   int64(48),
				"uptime_days":  float64(1.5),
				"is_up":        true,
				"serial":       "FOC123",
			}))
		})

		// Given a row where a mapped column is NULL
		// When the row is mapped
		// Then the variable should be left undefined
		It("should drop variables whose value is NULL", func() {
			row := models.NewRow(
				[]string{"name", "ip", "ports", "uptime", "up", "serial"},
				[]any{"sw1", nil, nil, nil, nil, nil},
			)

			res := mapper.Map(input, row)

			Expect(res.Host.Vars).To(BeEmpty())
		})

		// Given a row lacking a mapped column
		// When the row is mapped
		// Then the variable should be present and unset
		It("should mark variables of missing columns as unset", func() {
			row := models.NewRow([]string{"name", "ip"}, []any{"sw1", "10.0.0.1"})

			res := mapper.Map(input, row)

			Expect(res.Host.Vars).To(HaveKeyWithValue("ansible_host", "10.0.0.1"))
			Expect(res.Host.Vars).To(HaveKeyWithValue("port_count", models.Unset))
			Expect(res.Host.Vars).To(HaveLen(5))
		})

		It("should render times as RFC 3339 strings", func() {
			in := parseInputs(`- {name: seen, query: SELECT 1, host_field: name, var_fields: {last_seen: last_seen}}`)[0]
			ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

			res := mapper.Map(in, models.NewRow([]string{"name", "last_seen"}, []any{"sw1", ts}))

			Expect(res.Host.Vars).To(HaveKeyWithValue("last_seen", "2024-03-01T12:30:00Z"))
		})
	})

	Context("groups", func() {
		It("should read groups from group fields in declaration order", func() {
			input := parseInputs(`- {name: s, query: SELECT 1, host_field: name, group_fields: [site, vendor]}`)[0]

			res := mapper.Map(input, models.NewRow([]string{"name", "vendor", "site"}, []any{"sw1", "cisco", "nyc"}))

			Expect(res.Groups).To(Equal([]string{"nyc", "cisco"}))
		})

		// Given group fields that are NULL, empty, missing or duplicated
		// When the row is mapped
		// Then only distinct non-empty names should remain
		It("should ignore empty group names and duplicates", func() {
			input := parseInputs(`- {name: s, query: SELECT 1, host_field: name, group_fields: [a, b, c, d, e]}`)[0]
			row := models.NewRow([]string{"name", "a", "b", "c", "e"}, []any{"sw1", "core", nil, " ", "core"})

			res := mapper.Map(input, row)

			Expect(res.Skipped()).To(BeFalse())
			Expect(res.Groups).To(Equal([]string{"core"}))
		})

		It("should never produce the reserved _meta group", func() {
			input := parseInputs(`- {name: s, query: SELECT 1, host_field: name, group_fields: [g]}`)[0]

			res := mapper.Map(input, models.NewRow([]string{"name", "g"}, []any{"sw1", "_meta"}))

			Expect(res.Skipped()).To(BeFalse())
			Expect(res.Groups).To(BeEmpty())
		})

		It("should stringify numeric group values", func() {
			input := parseInputs(`- {name: s, query: SELECT 1, host_field: name, group_fields: [vlan]}`)[0]

			res := mapper.Map(input, models.NewRow([]string{"name", "vlan"}, []any{"sw1", int64(100)}))

			Expect(res.Groups).To(Equal([]string{"100"}))
		})

		// Given group templates
		// When the row is mapped
		// Then each rendered template should name a group
		It("should render group templates against the row", func() {
			input := parseInputs(`
- name: s
  query: SELECT 1
  host_field: name
  group_fields: [site]
  group_templates: ["{{ .site }}_{{ .vendor }}", "all_switches"]
`)[0]

			res := mapper.Map(input, models.NewRow([]string{"name", "site", "vendor"}, []any{"sw1", "nyc", "cisco"}))

			Expect(res.Groups).To(Equal([]string{"nyc", "nyc_cisco", "all_switches"}))
		})

		It("should drop a template group when the template references a missing column", func() {
			input := parseInputs(`- {name: s, query: SELECT 1, host_field: name, group_templates: ["{{ .rack }}", "static"]}`)[0]

			res := mapper.Map(input, models.NewRow([]string{"name"}, []any{"sw1"}))

			Expect(res.Skipped()).To(BeFalse())
			Expect(res.Groups).To(Equal([]string{"static"}))
		})

		It("should render NULL as an empty string in templates", func() {
			input := parseInputs(`- {name: s, query: SELECT 1, host_field: name, group_templates: ["{{ .site }}"]}`)[0]

			res := mapper.Map(input, models.NewRow([]string{"name", "site"}, []any{"sw1", nil}))

			Expect(res.Groups).To(BeEmpty())
		})
	})

	Context("transforms", func() {
		var input models.Input

		BeforeEach(func() {
			input = parseInputs(`
- name: s
  query: SELECT 1
  host_field: short
  group_fields: [role]
  transforms:
    - {field: fqdn, regex: '^([^.]+)\.', out: short}
    - {field: short, regex: '^[a-z]+', out: role}
`)[0]
		})

		// Given transforms chained on the row
		// When the row is mapped
		// Then each output should be visible to later transforms and mappings
		It("should apply transforms in order", func() {
			res := mapper.Map(input, models.NewRow([]string{"fqdn"}, []any{"core01.nyc.example.org"}))

			Expect(res.Skipped()).To(BeFalse())
			Expect(res.Host.Name).To(Equal("core01"))
			Expect(res.Groups).To(Equal([]string{"core"}))
		})

		It("should skip rows whose value does not match", func() {
			res := mapper.Map(input, models.NewRow([]string{"fqdn"}, []any{"localhost"}))

			Expect(res.Skipped()).To(BeTrue())
			Expect(res.Skip.Reason).To(Equal(srvErrors.SkipTransformNoMatch))
		})

		It("should skip rows lacking the transform field", func() {
			res := mapper.Map(input, models.NewRow([]string{"name"}, []any{"sw1"}))

			Expect(res.Skipped()).To(BeTrue())
			Expect(res.Skip.Reason).To(Equal(srvErrors.SkipTransformFieldMissing))
		})

		It("should overwrite an existing column", func() {
			in := parseInputs(`
- name: s
  query: SELECT 1
  host_field: name
  transforms:
    - {field: name, regex: '^(\w+)', out: name}
`)[0]

			res := mapper.Map(in, models.NewRow([]string{"name"}, []any{"sw1.lab"}))

			Expect(res.Host.Name).To(Equal("sw1"))
		})

		// Given a transform regex without a leading anchor
		// When the value only matches further in
		// Then the row should be skipped because matching starts at the beginning
		It("should only match at the start of the value", func() {
			in := parseInputs(`
- name: s
  query: SELECT 1
  host_field: name
  group_fields: [num]
  transforms:
    - {field: name, regex: '(\d+)', out: num}
`)[0]

			res := mapper.Map(in, models.NewRow([]string{"name"}, []any{"sw12"}))

			Expect(res.Skipped()).To(BeTrue())
			Expect(res.Skip.Reason).To(Equal(srvErrors.SkipTransformNoMatch))
		})

		It("should extract from further in with an explicit prefix", func() {
			in := parseInputs(`
- name: s
  query: SELECT 1
  host_field: name
  group_fields: [num]
  transforms:
    - {field: name, regex: '[a-z]+(\d+)', out: num}
`)[0]

			res := mapper.Map(in, models.NewRow([]string{"name"}, []any{"sw12"}))

			Expect(res.Skipped()).To(BeFalse())
			Expect(res.Groups).To(Equal([]string{"12"}))
		})

		// Given a transform on a NULL column
		// When the row is mapped
		// Then the row should be skipped as if the field were missing
		It("should skip rows whose transform field is NULL", func() {
			in := parseInputs(`
- name: s
  query: SELECT 1
  host_field: name
  transforms:
    - {field: fqdn, regex: '.*', out: short}
`)[0]

			res := mapper.Map(in, models.NewRow([]string{"name", "fqdn"}, []any{"sw1", nil}))

			Expect(res.Skipped()).To(BeTrue())
			Expect(res.Skip.Reason).To(Equal(srvErrors.SkipTransformFieldMissing))
		})
	})

	Context("duplicate columns", func() {
		// Given a row with two columns of the same name
		// When groups come from both group fields and templates
		// Then both should see the first column's value
		It("should use the first column everywhere", func() {
			in := parseInputs(`- {name: s, query: SELECT 1, host_field: name, group_fields: [site], group_templates: ["t_{{ .site }}"]}`)[0]
			row := models.NewRow([]string{"name", "site", "site"}, []any{"sw1", "nyc", "lax"})

			res := mapper.Map(in, row)

			Expect(res.Groups).To(Equal([]string{"nyc", "t_nyc"}))
		})
	})
})
