package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/workflow"
)

func TestTransition_RecorridoCompleto(t *testing.T) {
	s := workflow.Initial(2025)

	s, err := workflow.Transition(s, workflow.Action{Type: workflow.ActionOpen, Target: workflow.ViewCensuses})
	require.NoError(t, err)
	assert.Equal(t, workflow.State{View: workflow.ViewCensuses, Year: 2025}, s)

	s, err = workflow.Transition(s, workflow.Action{Type: workflow.ActionSelectYear, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 2024, s.Year)

	s, err = workflow.Transition(s, workflow.Action{Type: workflow.ActionOpenCensus, CensusID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, workflow.State{View: workflow.ViewCensusDetails, Year: 2024, CensusID: "c1"}, s)

	s, err = workflow.Transition(s, workflow.Action{Type: workflow.ActionBack})
	require.NoError(t, err)
	assert.Equal(t, workflow.State{View: workflow.ViewCensuses, Year: 2024}, s, "volver limpia el censo activo")

	s, err = workflow.Transition(s, workflow.Action{Type: workflow.ActionBack})
	require.NoError(t, err)
	assert.Equal(t, workflow.ViewDashboard, s.View)
}

func TestTransition_DesdeDashboardALasListas(t *testing.T) {
	for _, v := range []workflow.View{workflow.ViewItems, workflow.ViewLocations, workflow.ViewCensuses} {
		s, err := workflow.Transition(workflow.Initial(2025), workflow.Action{Type: workflow.ActionOpen, Target: v})
		require.NoError(t, err)
		assert.Equal(t, v, s.View)
	}
}

func TestTransition_Invalidas(t *testing.T) {
	cases := []struct {
		name string
		s    workflow.State
		a    workflow.Action
	}{
		{"detalle desde dashboard", workflow.Initial(2025), workflow.Action{Type: workflow.ActionOpenCensus, CensusID: "c1"}},
		{"abrir detalle como lista", workflow.Initial(2025), workflow.Action{Type: workflow.ActionOpen, Target: workflow.ViewCensusDetails}},
		{"back en dashboard", workflow.Initial(2025), workflow.Action{Type: workflow.ActionBack}},
		{"censo sin id", workflow.State{View: workflow.ViewCensuses}, workflow.Action{Type: workflow.ActionOpenCensus}},
		{"lista a lista", workflow.State{View: workflow.ViewItems}, workflow.Action{Type: workflow.ActionOpen, Target: workflow.ViewLocations}},
		{"año inválido", workflow.State{View: workflow.ViewCensuses}, workflow.Action{Type: workflow.ActionSelectYear, Year: 0}},
		{"vista desconocida", workflow.State{View: "sales"}, workflow.Action{Type: workflow.ActionBack}},
		{"acción desconocida", workflow.Initial(2025), workflow.Action{Type: "jump"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := workflow.Transition(tc.s, tc.a)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, tc.s, next, "una transición inválida no cambia el estado")
		})
	}
}
