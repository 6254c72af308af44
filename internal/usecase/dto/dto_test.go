package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linuskangsoftware/bubbly/internal/pkg/validator"
	"github.com/linuskangsoftware/bubbly/internal/usecase/dto"
)

func TestCreateWaypointRequest_ZeroCoordinatesValid(t *testing.T) {
	// точка на экваторе / нулевом меридиане проходит валидацию
	err := validator.Validate(dto.CreateWaypointRequest{
		Name:      "Equator Fountain",
		Latitude:  0,
		Longitude: 0,
	})
	assert.NoError(t, err)
}

func TestCreateWaypointRequest_NameRequired(t *testing.T) {
	err := validator.Validate(dto.CreateWaypointRequest{
		Latitude:  -37.81,
		Longitude: 144.96,
	})
	assert.Error(t, err)
}

func TestAdjustXPRequest_ZeroDeltaValid(t *testing.T) {
	err := validator.Validate(dto.AdjustXPRequest{Delta: 0})
	assert.NoError(t, err)
}
