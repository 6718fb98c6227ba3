// SPDX-License-Identifier: MIT

package calibration

import "fmt"

// Source keys, "Name [Unit]", read by the *InputFromSource helpers.
const (
	KeyCriticalFrictionAngle = "Critical friction angle [deg]"
	KeyMinVoidRatio          = "Minimum void ratio [-]"
	KeyMaxVoidRatio          = "Maximum void ratio [-]"
	KeyLooseStress           = "Loose oedometer stress [kN/m^2]"
	KeyLooseVoidRatio        = "Loose oedometer void ratio [-]"
	KeyDenseStress           = "Dense oedometer stress [kN/m^2]"
	KeyDenseVoidRatio        = "Dense oedometer void ratio [-]"
	KeyPeakFrictionLoose     = "Loose peak friction angle [deg]"
	KeyPeakFrictionDense     = "Dense peak friction angle [deg]"
	KeyPeakDilatancy         = "Peak dilatancy angle [deg]"
	KeyPeakMeanStress        = "Peak mean stress [kN/m^2]"
	KeyPeakVoidRatio         = "Peak void ratio [-]"
)

// Per-path keys; prefix them with PathKey.
const (
	KeyAxialDisplacement = "Axial displacement [mm]"
	KeyHeight            = "Height [mm]"
	KeyStressDifference  = "Stress difference [kN/m^2]"
)

// CRS and per-stage CRL keys; prefix stage keys with StageKey.
const (
	KeyCRSStress    = "CRS stress [kN/m^2]"
	KeyCRSVoidRatio = "CRS void ratio [-]"
	KeyCRSHeight    = "CRS height [mm]"
	KeyCRSRate      = "CRS rate [mm/s]"

	KeyStageTime      = "Time [s]"
	KeyStageVoidRatio = "Void ratio [-]"
	KeyStageLoadFrom  = "Load from [kN/m^2]"
	KeyStageLoadTo    = "Load to [kN/m^2]"
)

// PathKey prefixes key with a path angle: PathKey(90, KeyHeight) is
// "90° Height [mm]".
func PathKey(angle int, key string) string {
	return fmt.Sprintf("%d° %s", angle, key)
}

// StageKey prefixes key with a 1-based CRL stage number:
// StageKey(1, KeyStageTime) is "Stage 1 Time [s]".
func StageKey(stage int, key string) string {
	return fmt.Sprintf("Stage %d %s", stage, key)
}
