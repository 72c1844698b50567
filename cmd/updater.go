package cmd

import (
	"github.com/mitchellh/mapstructure"
	"github.com/rinthtools/rinth/core"
)

type mrUpdateData struct {
	ProjectID        string `mapstructure:"project-id"`
	InstalledVersion string `mapstructure:"version"`
}

func (u mrUpdateData) ToMap() (map[string]interface{}, error) {
	newMap := make(map[string]interface{})
	err := mapstructure.Decode(u, &newMap)
	return newMap, err
}

type mrUpdateParser struct{}

func (mrUpdateParser) ParseUpdate(updateUnparsed map[string]interface{}) (interface{}, error) {
	var updateData mrUpdateData
	err := mapstructure.Decode(updateUnparsed, &updateData)
	return updateData, err
}

func init() {
	core.UpdateParsers["modrinth"] = mrUpdateParser{}
}
