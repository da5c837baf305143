package models

import "fmt"

// VehicleInfo is the decoded identity of a vehicle. It is created once per
// successful decode and replaced wholesale when the VIN changes, never
// patched in place.
type VehicleInfo struct {
	VIN             string `json:"vin" bson:"vin"`
	Make            string `json:"make" bson:"make"`
	Model           string `json:"model" bson:"model"`
	ModelYear       int    `json:"model_year" bson:"model_year"`
	BodyClass       string `json:"body_class,omitempty" bson:"body_class,omitempty"`
	EngineCylinders *int   `json:"engine_cylinders,omitempty" bson:"engine_cylinders,omitempty"`
	FuelType        string `json:"fuel_type,omitempty" bson:"fuel_type,omitempty"`
}

// VehicleKey identifies a vehicle for the safety feeds. Recall, complaint and
// investigation data is indexed by model attributes, not by VIN.
type VehicleKey struct {
	Make      string `json:"make"`
	Model     string `json:"model"`
	ModelYear int    `json:"model_year"`
}

// Key returns the safety-feed identity of the vehicle.
func (v *VehicleInfo) Key() VehicleKey {
	return VehicleKey{Make: v.Make, Model: v.Model, ModelYear: v.ModelYear}
}

// String renders the key in a form usable as a cache map key.
func (k VehicleKey) String() string {
	return fmt.Sprintf("%s|%s|%d", k.Make, k.Model, k.ModelYear)
}
