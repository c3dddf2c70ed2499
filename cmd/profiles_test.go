package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilesCommand_Flags(t *testing.T) {
	stance := profilesCmd.Flags().Lookup("stance")
	require.NotNil(t, stance)
	for _, v := range []string{"champion", "supporter", "neutral", "skeptic", "blocker"} {
		assert.Contains(t, stance.Usage, v)
	}

	influence := profilesCmd.Flags().Lookup("influence")
	require.NotNil(t, influence)
	for _, v := range []string{"decision_maker", "key_influencer", "contributor", "informed"} {
		assert.Contains(t, influence.Usage, v)
	}
}
