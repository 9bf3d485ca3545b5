package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplicationStage(t *testing.T) {
	t.Run(`strict table`, func(t *testing.T) {
		require.True(t, StageRecruiterProposed.AllowStrict(StageDraft))
		require.True(t, StageRecruiterProposed.AllowStrict(StageRejected))
		require.True(t, StageDraft.AllowStrict(StageAIReview))
		require.True(t, StageAIReview.AllowStrict(StageScreen))
		require.True(t, StageAIReview.AllowStrict(StageSubmitted))
		require.True(t, StageScreen.AllowStrict(StageSubmitted))
		require.True(t, StageSubmitted.AllowStrict(StageScreen))

		require.False(t, StageDraft.AllowStrict(StageSubmitted))
		require.False(t, StageRecruiterProposed.AllowStrict(StageAIReview))
		require.False(t, StageScreen.AllowStrict(StageInterview))
	})

	t.Run(`pipeline moves forward only`, func(t *testing.T) {
		require.True(t, StageSubmitted.AllowPipeline(StageInterview))
		require.True(t, StageSubmitted.AllowPipeline(StageOffer))
		require.True(t, StageInterview.AllowPipeline(StageHired))
		require.True(t, StageOffer.AllowPipeline(StageRejected))
		require.True(t, StageScreen.AllowPipeline(StageRejected))

		require.False(t, StageOffer.AllowPipeline(StageInterview))
		require.False(t, StageDraft.AllowPipeline(StageInterview))
		require.False(t, StageScreen.AllowPipeline(StageOffer))
		require.False(t, StageInterview.AllowPipeline(StageWithdrawn))
	})

	t.Run(`terminal stages never move`, func(t *testing.T) {
		for _, terminal := range []ApplicationStage{StageHired, StageRejected, StageWithdrawn} {
			for stage := range stageOrder {
				require.False(t, IsLegalTransition(terminal, stage), "%v -> %v", terminal, stage)
			}
			require.False(t, IsLegalTransition(terminal, StageRejected))
			require.False(t, IsLegalTransition(terminal, StageWithdrawn))
		}
	})

	t.Run(`active and initial stage`, func(t *testing.T) {
		require.True(t, StageHired.IsActive())
		require.True(t, StageDraft.IsActive())
		require.False(t, StageRejected.IsActive())
		require.False(t, StageWithdrawn.IsActive())
		require.Equal(t, StageScreen, InitialStage(true))
		require.Equal(t, StageSubmitted, InitialStage(false))
	})

	t.Run(`pending party`, func(t *testing.T) {
		require.Equal(t, PartyCandidate, StageRecruiterProposed.PendingParty())
		require.Equal(t, PartyRecruiter, StageScreen.PendingParty())
		require.Equal(t, PartyCompany, StageSubmitted.PendingParty())
		require.Equal(t, PartyNone, StageHired.PendingParty())
		require.Equal(t, PartyNone, ApplicationStage("unknown").PendingParty())
	})
}

func TestPlacementState(t *testing.T) {
	allowed := map[PlacementState][]PlacementState{
		PlacementHired:  {PlacementActive, PlacementFailed},
		PlacementActive: {PlacementCompleted, PlacementFailed},
	}
	all := []PlacementState{PlacementHired, PlacementActive, PlacementCompleted, PlacementFailed}
	for _, from := range all {
		for _, to := range all {
			expected := false
			for _, next := range allowed[from] {
				if next == to {
					expected = true
				}
			}
			require.Equal(t, expected, from.AllowChange(to), "%v -> %v", from, to)
		}
	}
	require.True(t, PlacementCompleted.IsTerminal())
	require.False(t, PlacementActive.IsTerminal())
}

func TestWorkflowSettingsDefaults(t *testing.T) {
	s := WorkflowSettings{RoleWeights: map[CollaboratorRole]float64{CollaboratorCloser: 50}}.WithDefaults()
	require.Equal(t, 365, s.ProtectionWindowDays)
	require.Equal(t, 90, s.GuaranteeDays)
	require.Equal(t, DefaultUrgentWithin, s.UrgentWithin)
	require.Equal(t, 50.0, s.RoleWeights[CollaboratorCloser])
	require.Equal(t, 40.0, s.RoleWeights[CollaboratorSourcer])
	require.Equal(t, 20.0, DefaultRoleWeights[CollaboratorCloser])
}
