package links

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukydev/vehicle-safety/internal/models"
)

func TestLinkFormats(t *testing.T) {
	assert.Equal(t, "https://www.nhtsa.gov/recalls?nhtsaId=22V001000", Recall("22V001000"))
	assert.Equal(t, "https://www.nhtsa.gov/complaints?odiNumber=11512345", Complaint("11512345"))
	assert.Equal(t, "https://www.nhtsa.gov/investigations?actionNumber=PE22001", Investigation("PE22001"))
}

func TestLinkEscaping(t *testing.T) {
	assert.Equal(t, "https://www.nhtsa.gov/recalls?nhtsaId=a%26b", Recall("a&b"))
}

func TestForBundle(t *testing.T) {
	bundle := &models.SafetyBundle{
		Recalls:        []models.Recall{{CampaignNumber: "22V001000"}},
		Investigations: []models.Investigation{{ActionNumber: "PE22001"}},
	}

	set := ForBundle(bundle)
	assert.Equal(t, Recall("22V001000"), set.Recalls["22V001000"])
	assert.Equal(t, Investigation("PE22001"), set.Investigations["PE22001"])
	assert.Nil(t, set.Complaints)
}

func TestForBundle_Nil(t *testing.T) {
	set := ForBundle(nil)
	assert.Nil(t, set.Recalls)
	assert.Nil(t, set.Complaints)
	assert.Nil(t, set.Investigations)
}
