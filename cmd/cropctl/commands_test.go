package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nano867/prediction-crop/database"
	"github.com/Nano867/prediction-crop/entities"
	"github.com/Nano867/prediction-crop/pkg/refdata"
	refdataRepoImp "github.com/Nano867/prediction-crop/pkg/refdata/repositoryImp"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRecommendCmd(t *testing.T) {
	out, err := execute(t, "recommend", "--region", "giza", "--month", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Recommended crops for Giza (Delta) - January")
	assert.Contains(t, out, "Wheat (Triticum aestivum): match score 3")
}

func TestRecommendCmd_JSON(t *testing.T) {
	out, err := execute(t, "recommend", "-r", "Aswan", "-m", "12", "--json")
	require.NoError(t, err)

	var rec entities.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.True(t, rec.RegionKnown)
	assert.Equal(t, entities.ClimateZone("Upper"), rec.Zone)
}

func TestRecommendCmd_Errors(t *testing.T) {
	out, err := execute(t, "recommend", "--region", "Atlantis", "--month", "3")
	require.Error(t, err)
	assert.Contains(t, out, `Unknown region "Atlantis"`)

	_, err = execute(t, "recommend", "--region", "Cairo", "--month", "13")
	require.Error(t, err)

	_, err = execute(t, "recommend", "--month", "3")
	require.Error(t, err)
}

func TestListCmds(t *testing.T) {
	out, err := execute(t, "regions")
	require.NoError(t, err)
	assert.Contains(t, out, "Kafr El-Sheikh")
	assert.Contains(t, out, "North Sinai")

	out, err = execute(t, "crops")
	require.NoError(t, err)
	assert.Contains(t, out, "maize")
	assert.Contains(t, out, "Nov Dec Jan Feb Mar")

	out, err = execute(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "Prediction rules (editable):")
}

func TestExportThenData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.yaml")
	_, err := execute(t, "export", "--out", path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "planting_months")

	out, err := execute(t, "--data", path, "regions")
	require.NoError(t, err)
	assert.Contains(t, out, "Cairo")
}

func TestSeedThenLoadFromDB(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "extra.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("regions:\n  - name: Luxor\n    zone: Upper\n"), 0o644))
	dbPath := filepath.Join(dir, "ref.db")

	out, err := execute(t, "--db", dbPath, "--data", yamlPath, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded ref.db: 10 regions, 4 crops, 3 zones")

	out, err = execute(t, "--db", dbPath, "recommend", "--region", "luxor", "--month", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "Recommended crops for Luxor (Upper)")
}

func TestSeedCmd_NeedsDB(t *testing.T) {
	_, err := execute(t, "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--db")
}

func TestDBCropTableReplacesDefaults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ref.db")
	db, err := database.OpenSQLite(dbPath)
	require.NoError(t, err)
	require.NoError(t, refdataRepoImp.New(db).Replace(refdata.Dataset{
		Crops: []entities.Crop{{
			ID: "barley", Name: "Barley (Giza 123)", IdealTempMin: 15, IdealTempMax: 22,
			Soils: []string{"sandy"}, WaterNeed: "low", PlantingMonths: []int{11, 12},
		}},
	}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	out, err := execute(t, "--db", dbPath, "crops")
	require.NoError(t, err)
	assert.Contains(t, out, "Barley (Giza 123)")
	assert.NotContains(t, out, "wheat")
	assert.NotContains(t, out, "maize")
}
