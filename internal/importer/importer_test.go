package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mauv0809/player-auction/internal/auction"
	"github.com/mauv0809/player-auction/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalColumn(t *testing.T) {
	cases := map[string]string{
		"Player Name":     importer.ColName,
		" name ":          importer.ColName,
		"Cricket Grade":   importer.ColCricket,
		"Batting":         importer.ColCricket,
		"Badminton":       importer.ColBadminton,
		"Shuttle":         importer.ColBadminton,
		"TT":              importer.ColTT,
		"Table Tennis":    importer.ColTT,
		"Mobile":          importer.ColContactNo,
		"Contact Number":  importer.ColContactNo,
		"CaptainFor":      importer.ColCaptainFor,
		"Department":      "",
		"ID":              importer.ColID,
		"Timestamp Added": "",
	}
	for header, want := range cases {
		assert.Equal(t, want, importer.CanonicalColumn(header), "header %q", header)
	}
}

func TestRead_LooseHeaders(t *testing.T) {
	in := "Player Name,Cric,Shuttle,Table Tennis,Mobile,Department\n" +
		"Asha,a,B,,0711,HR\n" +
		",,,,,\n" +
		"Dev, x ,c,A,,Ops\n"

	players, err := importer.Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, players, 2)

	assert.Equal(t, auction.Player{ID: 1, Name: "Asha", Cricket: auction.GradeA, Badminton: auction.GradeB, ContactNo: "0711"}, players[0])
	assert.Equal(t, 2, players[1].ID, "ids are synthesised in row order")
	assert.Equal(t, auction.GradeNone, players[1].Cricket, "unknown grades coerce to none")
	assert.Equal(t, auction.GradeC, players[1].Badminton)
	assert.Equal(t, auction.GradeA, players[1].TT)
	assert.False(t, players[1].Sold())
}

func TestRead_Errors(t *testing.T) {
	_, err := importer.Read(strings.NewReader(""))
	assert.Error(t, err)

	_, err = importer.Read(strings.NewReader("Cricket,TT\nA,B\n"))
	assert.ErrorContains(t, err, "no name column")

	_, err = importer.Read(strings.NewReader("Name,Team\nAsha,Nowhere FC\n"))
	assert.ErrorContains(t, err, "line 2")

	_, err = importer.Read(strings.NewReader("Name,Price\nAsha,lots\n"))
	assert.ErrorContains(t, err, "invalid price")
}

func TestWriteThenRead(t *testing.T) {
	players := []auction.Player{
		{ID: 4, Name: "Kiran", Cricket: auction.GradeB, Team: auction.Teams[5], Price: 320, CaptainFor: auction.SportCricket, ContactNo: "0799"},
		{ID: 9, Name: "Meera, Jr", TT: auction.GradeC},
	}
	var buf bytes.Buffer
	require.NoError(t, importer.Write(&buf, players))
	assert.True(t, strings.HasPrefix(buf.String(), "ID,Name,Cricket,Badminton,TT,Team,Price,CaptainFor,ContactNo\n"))

	back, err := importer.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, players, back)
}

func TestRead_Prices(t *testing.T) {
	accepted := map[string]int{"120": 120, "120.0": 120, " 75 ": 75, "0": 0}
	for raw, want := range accepted {
		players, err := importer.Read(strings.NewReader("Name,Price\nAsha," + raw + "\n"))
		require.NoError(t, err, "price %q", raw)
		assert.Equal(t, want, players[0].Price, "price %q", raw)
	}

	rejected := map[string]string{
		"12.9":        "not a whole number",
		"NaN":         "invalid price",
		"Inf":         "invalid price",
		"1e30":        "out of range",
		"99999999999": "out of range",
		"-5":          "out of range",
	}
	for raw, msg := range rejected {
		_, err := importer.Read(strings.NewReader("Name,Price\nAsha," + raw + "\n"))
		assert.ErrorContains(t, err, msg, "price %q", raw)
	}
}
