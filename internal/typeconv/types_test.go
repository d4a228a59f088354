package typeconv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault_AttributeAndColumnAgree(t *testing.T) {
	v := Default()

	cases := []struct {
		token     string
		attribute string
		column    string
	}{
		{"int", "number", "DataTypes.INTEGER"},
		{"float", "number", "DataTypes.FLOAT"},
		{"double", "number", "DataTypes.DOUBLE"},
		{"string", "string", "DataTypes.STRING"},
		{"date", "Date", "DataTypes.DATE"},
		{"boolean", "boolean", "DataTypes.BOOLEAN"},
		{"INT", "number", "DataTypes.INTEGER"},
		{"Boolean", "boolean", "DataTypes.BOOLEAN"},
	}
	for _, tc := range cases {
		m, ok := v.Lookup(tc.token)
		require.True(t, ok, tc.token)
		require.Equal(t, tc.attribute, m.Attribute, tc.token)
		require.Equal(t, tc.column, m.Column, tc.token)
	}
}

func TestLookup_UnknownFallsBack(t *testing.T) {
	v := Default()

	m, ok := v.Lookup("uuid")
	require.False(t, ok)
	require.Equal(t, v.Fallback(), m)
	require.Equal(t, "string", v.Attribute("uuid"))
	require.Equal(t, "DataTypes.STRING", v.Column("uuid"))
}

func TestNew_AppliesOverrides(t *testing.T) {
	v, err := New(map[string]Mapping{
		"String":   {Column: "DataTypes.TEXT"},
		"fallback": {Attribute: "unknown", Column: "DataTypes.JSON"},
	})
	require.NoError(t, err)

	require.Equal(t, "string", v.Attribute("string"))
	require.Equal(t, "DataTypes.TEXT", v.Column("string"))
	require.Equal(t, "unknown", v.Attribute("blob"))
	require.Equal(t, "DataTypes.JSON", v.Column("blob"))

	// defaults stay untouched
	require.Equal(t, "DataTypes.STRING", Default().Column("string"))
}

func TestNew_RejectsUnknownKey(t *testing.T) {
	_, err := New(map[string]Mapping{"decimal": {Column: "DataTypes.DECIMAL"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "decimal")
}

func TestNew_RejectsKeysNamingTheSameType(t *testing.T) {
	overrides := map[string]Mapping{
		"int": {Column: "DataTypes.BIGINT"},
		"INT": {Column: "DataTypes.SMALLINT"},
	}
	// map iteration order varies, so every attempt must fail
	for i := 0; i < 50; i++ {
		_, err := New(overrides)
		require.ErrorContains(t, err, "name the same type")
	}

	_, err := New(map[string]Mapping{"Fallback": {}, " fallback": {}})
	require.Error(t, err)
}

func TestEntries_Order(t *testing.T) {
	entries := Default().Entries()
	require.Len(t, entries, 6)

	var got []DataType
	for _, e := range entries {
		got = append(got, e.Type)
	}
	require.Equal(t, []DataType{Int, Float, Double, String, Date, Boolean}, got)
}

func TestKnown(t *testing.T) {
	require.True(t, Known("double"))
	require.True(t, Known(" DATE "))
	require.False(t, Known("timestamp"))
}
