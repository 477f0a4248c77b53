package peerconn

import (
	"context"
	"fmt"
	"time"

	"github.com/dashpay/dash-p2p-core/blsverify"
	"github.com/dashpay/dash-p2p-core/ecrecover"
	"github.com/dashpay/dash-p2p-core/wire"
)

const blsSignatureBytes = 96

// processMsgs is the receive loop: it reads one envelope at a time off the
// shared bufio.Reader and dispatches by command. A malformed-but-not-fatal
// envelope bumps ban score and is dropped; everything else either updates
// host-side state directly or forwards to the attached mixing session.
func (p *Peer) processMsgs(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		env, ok, err := wire.ReadEnvelope(p.r, p.magic)
		if err != nil {
			return disconnectError("read failed", err)
		}
		p.markRead()
		if !ok {
			p.bumpBanScore(1)
			continue
		}
		if err := p.handleEnvelope(env); err != nil {
			if gd, isGD := err.(*GracefulDisconnect); isGD {
				return gd
			}
			return disconnectError("handler failed", err)
		}
	}
}

func (p *Peer) bumpBanScore(delta int) {
	now := time.Now()
	p.mu.Lock()
	score := p.ban.Add(now, delta)
	p.mu.Unlock()
	if score >= BanThreshold {
		p.Ban("ban score threshold exceeded", 0)
	}
}

func (p *Peer) handleEnvelope(env *wire.Envelope) error {
	switch env.Command {
	case "ping":
		msg, err := wire.DecodePingMessage(env.Payload)
		if err != nil {
			p.bumpBanScore(10)
			return nil
		}
		return p.SendMsg("pong", (&wire.PongMessage{Nonce: msg.Nonce}).Encode())

	case "pong":
		msg, err := wire.DecodePongMessage(env.Payload)
		if err != nil {
			p.bumpBanScore(10)
			return nil
		}
		p.handlePong(msg)
		return nil

	case "spork":
		msg, err := wire.DecodeSporkMessage(env.Payload)
		if err != nil {
			p.bumpBanScore(10)
			return nil
		}
		go p.verifyAndStoreSpork(msg)
		return nil

	case "addr":
		msg, err := wire.DecodeAddrMessage(env.Payload)
		if err != nil {
			p.bumpBanScore(10)
			return nil
		}
		if p.cfg.Peers != nil {
			p.cfg.Peers.Add(msg.Entries)
		}
		return nil

	case "inv":
		msg, err := wire.DecodeInvMessage("inv", env.Payload)
		if err != nil {
			p.bumpBanScore(10)
			return nil
		}
		return p.handleInv(msg)

	case "islock":
		msg, err := wire.DecodeISLockMessage(env.Payload)
		if err != nil {
			p.bumpBanScore(10)
			return nil
		}
		p.handleISLock(msg)
		return nil

	case "clsig":
		_, err := wire.DecodeCLSigMessage(env.Payload)
		if err != nil {
			p.bumpBanScore(10)
		}
		return nil

	case "mnlistdiff":
		msg, err := wire.DecodeMNListDiffMessage(env.Payload)
		if err != nil {
			p.bumpBanScore(10)
			return nil
		}
		p.deliverMNListDiff(msg)
		return nil

	case "dsq":
		msg, err := wire.DecodeDSQMessage(env.Payload)
		if err != nil {
			p.bumpBanScore(10)
			return nil
		}
		return p.handleDSQ(msg)

	case "dssu", "dsf", "dsc":
		return p.forwardToSession(env)

	default:
		// Unknown or unsubscribed command: ignored, not a protocol error.
		return nil
	}
}

func (p *Peer) deliverMNListDiff(msg *wire.MNListDiffMessage) {
	select {
	case p.mnListDiffCh <- msg:
	default:
		// A stale unread diff occupies the single slot; drop the newest
		// rather than block the receive loop on a caller that never asked.
		log.Debugf("dropping mnlistdiff: queue full")
	}
}

func (p *Peer) handleInv(msg *wire.InvMessage) error {
	var want []wire.InvVector
	p.mu.Lock()
	hasSession := p.session != nil
	p.mu.Unlock()

	for _, v := range msg.Entries {
		switch v.Type {
		case wire.MsgDSTx:
			if hasSession {
				want = append(want, v)
			}
		case wire.MsgISLock:
			if p.cfg.RecentIslocks == nil || p.cfg.RecentIslocks.Add(v.Hash) {
				want = append(want, v)
			}
		}
	}
	if len(want) == 0 {
		return nil
	}
	out, err := (&wire.InvMessage{Entries: want}).Encode()
	if err != nil {
		return err
	}
	return p.SendMsg("getdata", out)
}

func (p *Peer) handleISLock(msg *wire.ISLockMessage) {
	if p.cfg.RecentIslocks == nil {
		return
	}
	p.cfg.RecentIslocks.Add(msg.TxID)
}

func (p *Peer) handleDSQ(msg *wire.DSQMessage) error {
	p.mu.Lock()
	sess := p.session
	p.mu.Unlock()

	if sess != nil && msg.Ready {
		ok, err := p.verifyDSQ(msg)
		if err != nil || !ok {
			p.bumpBanScore(20)
			if err == nil {
				err = fmt.Errorf("peerconn: dsq signature verification failed")
			}
			sess.DeliverError(err)
			return nil
		}
		sess.Deliver(msg)
		return nil
	}
	if p.cfg.RecentDSQ != nil {
		p.cfg.RecentDSQ.Add(msg)
	}
	return nil
}

func (p *Peer) forwardToSession(env *wire.Envelope) error {
	p.mu.Lock()
	sess := p.session
	p.mu.Unlock()
	if sess == nil {
		return nil // no attached session: nothing subscribes to PrivateSend control traffic
	}
	m, err := wire.DecodePayload(env.Command, env.Payload)
	if err != nil {
		p.bumpBanScore(10)
		return nil
	}
	sess.Deliver(m)
	return nil
}

// verifyDSQ checks a ready dsq's signature against the announcing
// masternode's operator BLS key over the dsq's single MsgHash digest.
func (p *Peer) verifyDSQ(msg *wire.DSQMessage) (bool, error) {
	if p.cfg.Masternodes == nil {
		return true, nil // no directory wired: cannot verify, so do not penalize
	}
	mn, found := p.cfg.Masternodes.GetByOutpoint(msg.MasternodeOutPoint)
	if !found {
		return false, nil
	}
	if len(msg.Signature) != blsSignatureBytes {
		return false, nil
	}
	var sig [96]byte
	copy(sig[:], msg.Signature)
	return blsverify.Verify(mn.PubKeyOperator, msg.MsgHash(), sig)
}

// verifyAndStoreSpork recovers the signer from a spork update and forwards
// it to the host's SporkStore; it runs off the receive-loop goroutine since
// signature recovery is comparatively expensive.
func (p *Peer) verifyAndStoreSpork(msg *wire.SporkMessage) {
	if p.cfg.SporkStore == nil {
		return
	}
	newSigs := p.cfg.SporkStore.IsNewSigs()
	hash := msg.MsgHash(newSigs)
	if _, _, err := ecrecover.RecoverCompact(msg.Signature, hash); err != nil {
		// Try the other scheme before giving up: a peer running an older
		// or newer node than us may disagree about which is active.
		hash = msg.MsgHash(!newSigs)
		if _, _, err := ecrecover.RecoverCompact(msg.Signature, hash); err != nil {
			return
		}
	}
	p.cfg.SporkStore.SetSpork(msg.SporkID, msg.Value, p.conn.RemoteAddr().String())
}
