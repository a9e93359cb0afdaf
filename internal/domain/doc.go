// Package domain models the inputs and outputs of a Fire Behaviour Advisory
// (FBA) for a single weather station and fuel type.
//
// # Data Source
//
// Station inputs are resolved upstream: the daily fire weather indices (FFMC,
// BUI, ISI) come from the station's noon observation or forecast, the fuel
// type and stand attributes come from the station's fuel record, and the
// morning relative humidity values come from the most recent hourly
// observations. Each request is published as flat JSON to the source topic
// and decoded into a [StationInputs].
//
// # CFFDRS Conventions
//
// Fuel types:
//
//	The Canadian Forest Fire Behaviour Prediction (FBP) System defines a
//	closed set of benchmark fuel types: C1–C7 (conifer), C7B, D1/D2
//	(deciduous), M1–M4 (mixedwood), O1A/O1B (grass), S1–S3 (slash).
//	Codes are upper case on the wire; parsing is case-insensitive.
//
// Daily FFMC:
//
//	The Fine Fuel Moisture Code (0–101) computed from the noon observation
//	represents peak burning conditions at 16:00 LST (17:00 PDT). Hourly
//	values are approximated from published diurnal curves indexed by the
//	daily value.
//
// Units:
//
//	Rate of spread in m/min, head fire intensity in kW/m, fire size in
//	hectares, flame length in metres, crown base height in metres, crown
//	fuel load in kg/m².
//
// # Critical Hours
//
// Critical hours are expressed on a 24-hour clock in the station's local
// time. Internally the stepping search uses an extended clock where hours
// past midnight continue as 24, 25, ... (see [Hour]); values are folded back
// into [0,24) only at the boundary. A window whose end precedes its start
// wraps through midnight. The canonical all-day window is 13:00 → 07:00.
package domain
