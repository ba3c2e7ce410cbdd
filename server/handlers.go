package server

import (
	"github.com/hsdfat8/diam-peer/codec"
	"github.com/hsdfat8/diam-peer/models_base"
	"github.com/hsdfat8/diam-peer/pkg/connection"
)

// Base protocol command codes.
const (
	CommandCapabilitiesExchange uint32 = 257
	CommandDeviceWatchdog       uint32 = 280
	CommandDisconnectPeer       uint32 = 282
)

// Base protocol AVP codes used by the builders. Dispatch and echo work
// on numeric codes so the hot path never consults the dictionary.
const (
	avpAcctApplicationID uint32 = 259
	avpOriginHost        uint32 = 264
	avpSupportedVendorID uint32 = 265
	avpVendorID          uint32 = 266
	avpResultCode        uint32 = 268
	avpOriginStateID     uint32 = 278
	avpOriginRealm       uint32 = 296
)

// newAnswer starts an answer message for the given request. The answer
// header is always a fresh instance: command code, application ID and the
// hop-by-hop/end-to-end correlation identifiers are copied by value from
// the request, and the request flag is cleared.
func newAnswer(req *codec.Message) *codec.Message {
	return &codec.Message{
		Header: &connection.Header{
			Version:       1,
			CommandCode:   req.Header.CommandCode,
			ApplicationID: req.Header.ApplicationID,
			HopByHopID:    req.Header.HopByHopID,
			EndToEndID:    req.Header.EndToEndID,
		},
	}
}

func resultCodeAVP(rc ResultCode) *codec.AVP {
	return &codec.AVP{
		Code:  avpResultCode,
		Flags: codec.AVPFlags{Mandatory: true},
		Data:  models_base.Unsigned32(rc),
	}
}

// echoAVPs copies every occurrence of the given attribute from the
// request into the answer, preserving request order. Repeated codes are
// echoed entry by entry, never collapsed.
func echoAVPs(answer, req *codec.Message, code uint32) error {
	entries := req.FindAVPs(code)
	if len(entries) == 0 {
		return ErrMissingAVP{Code: code}
	}
	for _, a := range entries {
		cp := *a
		answer.AppendAVP(&cp)
	}
	return nil
}

// echoAVPsIfPresent is echoAVPs for attributes that are optional in the
// answer being built.
func echoAVPsIfPresent(answer, req *codec.Message, code uint32) {
	for _, a := range req.FindAVPs(code) {
		cp := *a
		answer.AppendAVP(&cp)
	}
}

// CapabilitiesExchangeAnswer builds the CEA for a CER: the peer's own
// Origin-Host, Origin-Realm, Vendor-Id, Origin-State-Id,
// Supported-Vendor-Id and Acct-Application-Id values are echoed back
// with Result-Code DIAMETER_SUCCESS. Any of the six absent from the
// request fails with ErrMissingAVP; the worker then answers with the
// fallback instead of tearing the connection down.
func CapabilitiesExchangeAnswer(req *codec.Message) (*codec.Message, error) {
	answer := newAnswer(req)

	if err := echoAVPs(answer, req, avpOriginHost); err != nil {
		return nil, err
	}
	if err := echoAVPs(answer, req, avpOriginRealm); err != nil {
		return nil, err
	}
	answer.AppendAVP(resultCodeAVP(ResultCodeSuccess))
	if err := echoAVPs(answer, req, avpVendorID); err != nil {
		return nil, err
	}
	if err := echoAVPs(answer, req, avpOriginStateID); err != nil {
		return nil, err
	}
	if err := echoAVPs(answer, req, avpSupportedVendorID); err != nil {
		return nil, err
	}
	if err := echoAVPs(answer, req, avpAcctApplicationID); err != nil {
		return nil, err
	}

	return answer, nil
}

// DeviceWatchdogAnswer builds the DWA for a DWR.
func DeviceWatchdogAnswer(req *codec.Message) (*codec.Message, error) {
	answer := newAnswer(req)
	answer.AppendAVP(resultCodeAVP(ResultCodeSuccess))
	echoAVPsIfPresent(answer, req, avpOriginHost)
	echoAVPsIfPresent(answer, req, avpOriginRealm)
	return answer, nil
}

// DisconnectPeerAnswer builds the DPA for a DPR. The worker closes the
// connection after this answer is sent.
func DisconnectPeerAnswer(req *codec.Message) (*codec.Message, error) {
	answer := newAnswer(req)
	answer.AppendAVP(resultCodeAVP(ResultCodeSuccess))
	echoAVPsIfPresent(answer, req, avpOriginHost)
	echoAVPsIfPresent(answer, req, avpOriginRealm)
	return answer, nil
}

// UnableToComplyAnswer is the default handler for requests the server
// does not support, and the fallback when a registered builder fails.
// It ignores the request body entirely: the answer carries exactly one
// attribute, Result-Code DIAMETER_UNABLE_TO_COMPLY, under a header
// correlated to the request.
func UnableToComplyAnswer(req *codec.Message) (*codec.Message, error) {
	answer := newAnswer(req)
	answer.AppendAVP(resultCodeAVP(ResultCodeUnableToComply))
	return answer, nil
}

// BaseMux returns the command routing table for the base protocol:
// Capabilities-Exchange, Device-Watchdog and Disconnect-Peer, with
// every other code answered by UnableToComplyAnswer.
func BaseMux() *Mux {
	m := NewMux(UnableToComplyAnswer)
	m.Handle(CommandCapabilitiesExchange, CapabilitiesExchangeAnswer)
	m.Handle(CommandDeviceWatchdog, DeviceWatchdogAnswer)
	m.Handle(CommandDisconnectPeer, DisconnectPeerAnswer)
	return m
}
