package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeRejectionReasons(t *testing.T) {
	t.Run("TenantFirstBuiltInAfter", func(t *testing.T) {
		tenant := []RejectionReason{
			{ID: "t1", OrganizationID: "org-1", Text: "Precisamos de fotos mais recentes."},
		}
		merged := MergeRejectionReasons(tenant, BuiltInRejectionReasons)
		assert.Len(t, merged, len(BuiltInRejectionReasons)+1)
		assert.Equal(t, "t1", merged[0].ID)
		assert.True(t, merged[1].BuiltIn)
	})

	t.Run("TenantTextSuppressesMatchingBuiltIn", func(t *testing.T) {
		tenant := []RejectionReason{
			{ID: "t1", OrganizationID: "org-1", Text: "  fotos de baixa qualidade ou inadequadas.  "},
		}
		merged := MergeRejectionReasons(tenant, BuiltInRejectionReasons)
		assert.Len(t, merged, len(BuiltInRejectionReasons))
		assert.Equal(t, "t1", merged[0].ID)
		for _, r := range merged[1:] {
			assert.NotEqual(t, "builtin-low-quality-photos", r.ID)
		}
	})

	t.Run("DuplicateTenantEntriesCollapse", func(t *testing.T) {
		tenant := []RejectionReason{
			{ID: "t1", Text: "Perfil inadequado para a vaga."},
			{ID: "t2", Text: "perfil inadequado para a vaga."},
		}
		merged := MergeRejectionReasons(tenant, nil)
		assert.Len(t, merged, 1)
		assert.Equal(t, "t1", merged[0].ID)
	})

	t.Run("BlankTenantTextSkipped", func(t *testing.T) {
		tenant := []RejectionReason{{ID: "t1", Text: "   "}}
		merged := MergeRejectionReasons(tenant, BuiltInRejectionReasons)
		assert.Len(t, merged, len(BuiltInRejectionReasons))
	})
}

func TestComposeRejectionMessage(t *testing.T) {
	t.Run("NothingSelectedYieldsDefault", func(t *testing.T) {
		assert.Equal(t, DefaultRejectionMessage, ComposeRejectionMessage(nil, ""))
		assert.Equal(t, DefaultRejectionMessage, ComposeRejectionMessage([]string{" "}, "  "))
	})

	t.Run("SingleReasonIsBare", func(t *testing.T) {
		msg := ComposeRejectionMessage([]string{"Perfil incompleto."}, "")
		assert.Equal(t, "Perfil incompleto.", msg)
	})

	t.Run("MultipleReasonsBecomeBullets", func(t *testing.T) {
		msg := ComposeRejectionMessage(
			[]string{"Fotos de baixa qualidade ou inadequadas.", "Perfil inadequado para a vaga."},
			"Tente novamente na próxima campanha.",
		)
		lines := strings.Split(msg, "\n")
		assert.Len(t, lines, 3)
		for _, line := range lines {
			assert.True(t, strings.HasPrefix(line, "• "))
		}
		assert.Equal(t, "• Tente novamente na próxima campanha.", lines[2])
	})
}
