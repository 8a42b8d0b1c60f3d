package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestDisplayRef(t *testing.T) {
	t.Run("build-service requests render as SR#", func(t *testing.T) {
		req := Request{ID: "345001", Name: "vim", Kind: KindOBS}
		assert.Equal(t, "SR#345001", req.DisplayRef())
	})

	t.Run("gitea requests render as PR#", func(t *testing.T) {
		req := Request{ID: "42", Name: "Update kernel config", Kind: KindGitea}
		assert.Equal(t, "PR#42", req.DisplayRef())
	})
}

func TestEntityInfoRows(t *testing.T) {
	t.Run("user rows keep a fixed order", func(t *testing.T) {
		u := User{Login: "geeko", Email: "geeko@example.com", Realname: "Geeko Chameleon", State: "confirmed"}

		rows := u.InfoRows()

		assert.Len(t, rows, 4)
		assert.Equal(t, InfoRow{Key: "User", Value: "geeko"}, rows[0])
		assert.Equal(t, InfoRow{Key: "State", Value: "confirmed"}, rows[3])
	})

	t.Run("group rows omit users unless populated", func(t *testing.T) {
		g := Group{Name: "release-team", Email: "rt@example.com", Maintainers: []string{"alice", "bob"}}

		rows := g.InfoRows()

		assert.Len(t, rows, 3)
		assert.Equal(t, "alice, bob", rows[2].Value)
	})

	t.Run("group rows include full member list when present", func(t *testing.T) {
		g := Group{Name: "release-team", Users: []string{"carol"}}

		rows := g.InfoRows()

		assert.Len(t, rows, 4)
		assert.Equal(t, "Users", rows[3].Key)
		assert.Equal(t, "carol", rows[3].Value)
	})
}
